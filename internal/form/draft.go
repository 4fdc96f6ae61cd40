// Package form turns user input into store mutations.
package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/journal"
	"github.com/julianstephens/codelit/internal/models"
)

// ValidationError names the first field that blocked a submit. The form
// should stay open when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type field struct {
	name  string
	value string
}

func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Message: "is required"}
		}
	}
	return nil
}

// MeditationDraft holds an unsaved meditation. OriginalDate is set when
// editing and lets a submit move the record to a new date.
type MeditationDraft struct {
	OriginalDate   string
	Date           string
	BibleReference string
	Title          string
	Capture        string
	Organize       string
	Distill        string
	Express        string
}

// NewMeditationDraft starts a blank draft for date, or today when date is empty.
func NewMeditationDraft(date string) MeditationDraft {
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}
	return MeditationDraft{Date: date}
}

func EditMeditationDraft(m models.Meditation) MeditationDraft {
	return MeditationDraft{
		OriginalDate:   m.Date,
		Date:           m.Date,
		BibleReference: m.BibleReference,
		Title:          m.Title,
		Capture:        m.Capture,
		Organize:       m.Organize,
		Distill:        m.Distill,
		Express:        m.Express,
	}
}

func (d MeditationDraft) IsEdit() bool {
	return d.OriginalDate != ""
}

func (d MeditationDraft) Validate() error {
	if !journal.ValidDate(strings.TrimSpace(d.Date)) {
		return &ValidationError{Field: "date", Message: "must be a date in YYYY-MM-DD form"}
	}
	return required(
		field{"bibleReference", d.BibleReference},
		field{"title", d.Title},
		field{"capture", d.Capture},
		field{"organize", d.Organize},
		field{"distill", d.Distill},
		field{"express", d.Express},
	)
}

func (d MeditationDraft) Record() models.Meditation {
	return models.Meditation{
		Date:           strings.TrimSpace(d.Date),
		BibleReference: strings.TrimSpace(d.BibleReference),
		Title:          strings.TrimSpace(d.Title),
		Capture:        d.Capture,
		Organize:       d.Organize,
		Distill:        d.Distill,
		Express:        d.Express,
	}
}

// PrayerDraft holds an unsaved meditation prayer. An empty ID creates.
type PrayerDraft struct {
	ID         string
	Title      string
	Scripture  string
	Content    string
	Reflection string
}

func EditPrayerDraft(p models.Prayer) PrayerDraft {
	return PrayerDraft{
		ID:         p.ID,
		Title:      p.Title,
		Scripture:  p.Scripture,
		Content:    p.Content,
		Reflection: p.Reflection,
	}
}

func (d PrayerDraft) Validate() error {
	return required(field{"title", d.Title}, field{"content", d.Content})
}

func (d PrayerDraft) Record() models.Prayer {
	return models.Prayer{
		ID:         d.ID,
		Title:      strings.TrimSpace(d.Title),
		Scripture:  strings.TrimSpace(d.Scripture),
		Content:    d.Content,
		Reflection: d.Reflection,
	}
}

// IntercessionDraft holds an unsaved intercessory prayer.
type IntercessionDraft struct {
	PrayerDraft
	Category models.Category
}

// NewIntercessionDraft starts a blank draft filed under "other".
func NewIntercessionDraft() IntercessionDraft {
	return IntercessionDraft{Category: models.CategoryOther}
}

func EditIntercessionDraft(rec models.Intercession) IntercessionDraft {
	return IntercessionDraft{PrayerDraft: EditPrayerDraft(rec.Prayer), Category: rec.Category}
}

func (d IntercessionDraft) Validate() error {
	return d.PrayerDraft.Validate()
}

func (d IntercessionDraft) Record() models.Intercession {
	cat := models.Category(strings.TrimSpace(string(d.Category)))
	if cat == "" {
		cat = models.CategoryOther
	}
	return models.Intercession{Prayer: d.PrayerDraft.Record(), Category: cat}
}
