package form

import (
	"context"
	"fmt"

	"github.com/julianstephens/codelit/internal/journal"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/prayer"
)

// RemoteSaver is the optional best-effort sync target for meditations.
type RemoteSaver interface {
	SaveMeditation(ctx context.Context, rec models.Meditation) error
}

// Result is a committed record plus any non-fatal warning for the user.
type Result[T any] struct {
	Record  T
	Warning string
}

type Controller struct {
	journal       *journal.Store
	prayers       *prayer.Store[models.Prayer, *models.Prayer]
	intercessions *prayer.IntercessionStore
	remote        RemoteSaver
}

// NewController wires the stores. remote may be nil.
func NewController(j *journal.Store, p *prayer.Store[models.Prayer, *models.Prayer], i *prayer.IntercessionStore, remote RemoteSaver) *Controller {
	return &Controller{journal: j, prayers: p, intercessions: i, remote: remote}
}

// SubmitMeditation validates the draft, tries the remote save, and always
// writes locally. A failed remote save becomes Result.Warning.
func (c *Controller) SubmitMeditation(ctx context.Context, d MeditationDraft) (Result[models.Meditation], error) {
	if err := d.Validate(); err != nil {
		return Result[models.Meditation]{}, err
	}
	rec := d.Record()
	// Moving onto a day that already has a meditation would overwrite it.
	if d.IsEdit() && d.OriginalDate != rec.Date && c.journal.Has(rec.Date) {
		return Result[models.Meditation]{}, &ValidationError{Field: "date", Message: fmt.Sprintf("%s already has a meditation", rec.Date)}
	}

	var res Result[models.Meditation]
	if c.remote != nil {
		if err := c.remote.SaveMeditation(ctx, rec); err != nil {
			logger.Warn("Remote save failed, keeping local copy", "date", rec.Date, "error", err)
			res.Warning = "Remote save failed; saved locally."
		}
	}

	if err := c.journal.Upsert(rec); err != nil {
		return Result[models.Meditation]{}, err
	}
	if d.IsEdit() && d.OriginalDate != rec.Date {
		if err := c.journal.Delete(d.OriginalDate); err != nil {
			return Result[models.Meditation]{}, fmt.Errorf("failed to remove %s after moving it: %w", d.OriginalDate, err)
		}
	}
	res.Record = rec
	return res, nil
}

func (c *Controller) SubmitPrayer(d PrayerDraft) (Result[models.Prayer], error) {
	if err := d.Validate(); err != nil {
		return Result[models.Prayer]{}, err
	}
	rec, err := c.prayers.Upsert(d.Record())
	if err != nil {
		return Result[models.Prayer]{}, err
	}
	return Result[models.Prayer]{Record: rec}, nil
}

// SubmitIntercession saves the draft. Editing keeps the answered state.
func (c *Controller) SubmitIntercession(d IntercessionDraft) (Result[models.Intercession], error) {
	if err := d.Validate(); err != nil {
		return Result[models.Intercession]{}, err
	}
	rec := d.Record()
	if existing, ok := c.intercessions.Get(rec.ID); ok {
		rec.Answered = existing.Answered
		rec.Answer = existing.Answer
		rec.AnsweredAt = existing.AnsweredAt
	}
	saved, err := c.intercessions.Upsert(rec)
	if err != nil {
		return Result[models.Intercession]{}, err
	}
	return Result[models.Intercession]{Record: saved}, nil
}

func (c *Controller) MarkAnswered(id, answer string) (Result[models.Intercession], error) {
	if err := required(field{"answer", answer}); err != nil {
		return Result[models.Intercession]{}, err
	}
	rec, err := c.intercessions.MarkAnswered(id, answer)
	if err != nil {
		return Result[models.Intercession]{}, err
	}
	return Result[models.Intercession]{Record: rec}, nil
}

// The Delete methods assume the caller already asked for confirmation.

func (c *Controller) DeleteMeditation(date string) error {
	return c.journal.Delete(date)
}

func (c *Controller) DeletePrayer(id string) error {
	return c.prayers.Delete(id)
}

func (c *Controller) DeleteIntercession(id string) error {
	return c.intercessions.Delete(id)
}
