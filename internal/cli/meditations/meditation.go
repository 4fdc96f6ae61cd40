package meditations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/form"
	"github.com/julianstephens/codelit/internal/tui"
	"github.com/julianstephens/codelit/internal/view"
)

type AddCmd struct {
	Date        string `short:"d" help:"Meditation date (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	Reference   string `short:"r" help:"Bible reference, e.g. '요한복음 3:16'."`
	Title       string `short:"t" help:"Title."`
	Capture     string `help:"Capture: the verse or word that stood out."`
	Organize    string `help:"Organize: context and related passages."`
	Distill     string `help:"Distill: the core truth in one sentence."`
	Express     string `help:"Express: prayer and application."`
	Interactive bool   `short:"i" help:"Fill in the meditation with an interactive form."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if ctx.Journal.Has(date) {
		return fmt.Errorf("a meditation for %s already exists, use 'codelit edit %s'", date, date)
	}

	d := form.NewMeditationDraft(date)
	d.BibleReference = c.Reference
	d.Title = c.Title
	d.Capture = c.Capture
	d.Organize = c.Organize
	d.Distill = c.Distill
	d.Express = c.Express

	if c.Interactive {
		if err := tui.NewMeditationForm(&d).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}
	return submit(ctx, d)
}

type EditCmd struct {
	Date        string  `arg:"" help:"Date of the meditation to edit."`
	NewDate     *string `name:"move-to" help:"Move the meditation to another date."`
	Reference   *string `short:"r" help:"New Bible reference."`
	Title       *string `short:"t" help:"New title."`
	Capture     *string `help:"New capture text."`
	Organize    *string `help:"New organize text."`
	Distill     *string `help:"New distill text."`
	Express     *string `help:"New express text."`
	Interactive bool    `short:"i" help:"Edit with an interactive form."`
	Yes         bool    `short:"y" help:"Replace a meditation already on the --move-to date without asking."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	rec, ok := ctx.Journal.Get(date)
	if !ok {
		return fmt.Errorf("no meditation found for %s", date)
	}

	d := form.EditMeditationDraft(rec)
	if c.NewDate != nil {
		if d.Date, err = cli.ParseDate(*c.NewDate); err != nil {
			return err
		}
	}
	for dst, src := range map[*string]*string{
		&d.BibleReference: c.Reference,
		&d.Title:          c.Title,
		&d.Capture:        c.Capture,
		&d.Organize:       c.Organize,
		&d.Distill:        c.Distill,
		&d.Express:        c.Express,
	} {
		if src != nil {
			*dst = *src
		}
	}

	if c.Interactive {
		if err := tui.NewMeditationForm(&d).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	if d.Date != d.OriginalDate && ctx.Journal.Has(d.Date) {
		existing, _ := ctx.Journal.Get(d.Date)
		ok, err := cli.Confirm(fmt.Sprintf("%s already has %q. Replace it?", d.Date, existing.Title), c.Yes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Edit cancelled.")
			return nil
		}
		if err := ctx.Controller.DeleteMeditation(d.Date); err != nil {
			return fmt.Errorf("failed to replace meditation: %w", err)
		}
	}
	return submit(ctx, d)
}

func submit(ctx *cli.Context, d form.MeditationDraft) error {
	saveCtx, cancel := context.WithTimeout(context.Background(), constants.RemoteSaveTimeout)
	defer cancel()
	res, err := ctx.Controller.SubmitMeditation(saveCtx, d)
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s (use --%s or -i)", verr.Error(), flagName(verr.Field))
		}
		return err
	}
	if res.Warning != "" {
		fmt.Printf("⚠ %s\n", res.Warning)
	}
	fmt.Printf("✓ Saved meditation for %s: %s\n", view.FormatDate(res.Record.Date), res.Record.Title)
	return nil
}

func flagName(field string) string {
	if field == "bibleReference" {
		return "reference"
	}
	return field
}

type ShowCmd struct {
	Date  string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
	Width int    `short:"w" help:"Wrap text at this width." default:"80"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	v, ok := ctx.App.Detail(date)
	if !ok {
		return fmt.Errorf("no meditation found for %s", date)
	}
	fmt.Print(RenderDetail(v, c.Width))
	return nil
}

// RenderDetail formats a meditation for the terminal, wrapping each
// section at width.
func RenderDetail(v view.DetailView, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Title)
	fmt.Fprintf(&b, "%s · %s\n", v.FormattedDate, v.Reference)
	for _, s := range v.Sections {
		fmt.Fprintf(&b, "\n%s (%s)\n", s.Stage.Name, s.Stage.Korean)
		fmt.Fprintf(&b, "%s\n", indent.String(wordwrap.String(s.Text, width-2), 2))
	}
	return b.String()
}

type DeleteCmd struct {
	Date string `arg:"" help:"Date of the meditation to delete."`
	Yes  bool   `short:"y" help:"Delete without asking for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	rec, ok := ctx.Journal.Get(date)
	if !ok {
		fmt.Printf("No meditation for %s, nothing to delete.\n", date)
		return nil
	}
	confirmed, err := cli.Confirm(fmt.Sprintf("Delete meditation %q (%s)?", rec.Title, date), c.Yes)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Delete cancelled.")
		return nil
	}
	if err := ctx.Controller.DeleteMeditation(date); err != nil {
		return fmt.Errorf("failed to delete meditation: %w", err)
	}
	fmt.Printf("✓ Deleted meditation for %s\n", date)
	return nil
}
