package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/codelit/internal/form"
	"github.com/julianstephens/codelit/internal/journal"
	"github.com/julianstephens/codelit/internal/models"
)

func notBlank(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func validDate(s string) error {
	if !journal.ValidDate(strings.TrimSpace(s)) {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// NewMeditationForm edits d in place. The same form serves create and edit.
func NewMeditationForm(d *form.MeditationDraft) *huh.Form {
	stageInput := func(key string, value *string) huh.Field {
		st := stage(key)
		return huh.NewText().
			Title(st.Name + " · " + st.Korean).
			Description(st.Description).
			Lines(4).
			Value(value).
			Validate(notBlank(st.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("날짜").
				Value(&d.Date).
				Validate(validDate),
			huh.NewInput().
				Title("성경 본문").
				Placeholder("요한복음 3:16").
				Value(&d.BibleReference).
				Validate(notBlank("Bible reference")),
			huh.NewInput().
				Title("제목").
				Value(&d.Title).
				Validate(notBlank("title")),
		),
		huh.NewGroup(
			stageInput("capture", &d.Capture),
			stageInput("organize", &d.Organize),
		),
		huh.NewGroup(
			stageInput("distill", &d.Distill),
			stageInput("express", &d.Express),
		),
	)
}

func stage(key string) models.Stage {
	for _, st := range models.Stages {
		if st.Key == key {
			return st
		}
	}
	return models.Stage{Key: key, Name: key}
}

func prayerFields(d *form.PrayerDraft) []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("제목").
			Value(&d.Title).
			Validate(notBlank("title")),
		huh.NewInput().
			Title("말씀").
			Description("optional").
			Value(&d.Scripture),
		huh.NewText().
			Title("기도").
			Lines(5).
			Value(&d.Content).
			Validate(notBlank("prayer")),
		huh.NewText().
			Title("묵상").
			Description("optional").
			Lines(3).
			Value(&d.Reflection),
	}
}

func NewPrayerForm(d *form.PrayerDraft) *huh.Form {
	return huh.NewForm(huh.NewGroup(prayerFields(d)...))
}

func NewIntercessionForm(d *form.IntercessionDraft) *huh.Form {
	options := make([]huh.Option[models.Category], 0, len(models.Categories)+1)
	for _, c := range models.Categories {
		options = append(options, huh.NewOption(c.Label(), c))
	}
	// Keep a custom category selectable when editing.
	if d.Category != "" && !d.Category.Known() {
		options = append(options, huh.NewOption(d.Category.Label(), d.Category))
	}

	fields := append([]huh.Field{
		huh.NewSelect[models.Category]().
			Title("분류").
			Options(options...).
			Value(&d.Category),
	}, prayerFields(&d.PrayerDraft)...)
	return huh.NewForm(huh.NewGroup(fields...))
}

// NewAnswerForm asks how an intercession was answered.
func NewAnswerForm(title string, answer *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("응답 · " + title).
				Lines(4).
				Value(answer).
				Validate(notBlank("answer")),
		),
	)
}
