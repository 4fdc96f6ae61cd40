package prayers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/form"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/prayer"
	"github.com/julianstephens/codelit/internal/tui"
)

const shortIDLen = 8

// resolveID expands the short form printed by the list commands. UUIDv7
// ids share their leading timestamp bits, so the short form is a suffix.
func resolveID(short string, ids []string) (string, error) {
	var match string
	for _, id := range ids {
		if id == short {
			return id, nil
		}
		if short != "" && strings.HasSuffix(id, short) {
			if match != "" {
				return "", fmt.Errorf("id %q is ambiguous", short)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", prayer.ErrNotFound, short)
	}
	return match, nil
}

// shortID is the last few characters of id.
func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[len(id)-shortIDLen:]
	}
	return id
}

func prayerIDs(list []models.Prayer) []string {
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids
}

func validationHint(err error) error {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s (use --%s or -i)", verr.Error(), verr.Field)
	}
	return err
}

type PrayerAddCmd struct {
	Title       string `short:"t" help:"Title."`
	Scripture   string `short:"s" help:"Scripture the prayer is based on."`
	Content     string `short:"c" help:"Prayer text."`
	Reflection  string `help:"Reflection."`
	Interactive bool   `short:"i" help:"Write the prayer in an interactive form."`
}

func (c *PrayerAddCmd) Run(ctx *cli.Context) error {
	d := form.PrayerDraft{Title: c.Title, Scripture: c.Scripture, Content: c.Content, Reflection: c.Reflection}
	if c.Interactive {
		if err := tui.NewPrayerForm(&d).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}
	res, err := ctx.Controller.SubmitPrayer(d)
	if err != nil {
		return validationHint(err)
	}
	fmt.Printf("✓ Saved prayer %q (%s)\n", res.Record.Title, shortID(res.Record.ID))
	return nil
}

type PrayerEditCmd struct {
	ID          string  `arg:"" help:"Prayer id, full or as shown by 'prayer list'."`
	Title       *string `short:"t" help:"New title."`
	Scripture   *string `short:"s" help:"New scripture."`
	Content     *string `short:"c" help:"New prayer text."`
	Reflection  *string `help:"New reflection."`
	Interactive bool    `short:"i" help:"Edit in an interactive form."`
}

func (c *PrayerEditCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(c.ID, prayerIDs(ctx.Prayers.All()))
	if err != nil {
		return err
	}
	rec, _ := ctx.Prayers.Get(id)
	d := form.EditPrayerDraft(rec)
	applyPrayerFlags(&d, c.Title, c.Scripture, c.Content, c.Reflection)
	if c.Interactive {
		if err := tui.NewPrayerForm(&d).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}
	res, err := ctx.Controller.SubmitPrayer(d)
	if err != nil {
		return validationHint(err)
	}
	fmt.Printf("✓ Updated prayer %q\n", res.Record.Title)
	return nil
}

func applyPrayerFlags(d *form.PrayerDraft, title, scripture, content, reflection *string) {
	if title != nil {
		d.Title = *title
	}
	if scripture != nil {
		d.Scripture = *scripture
	}
	if content != nil {
		d.Content = *content
	}
	if reflection != nil {
		d.Reflection = *reflection
	}
}

type PrayerListCmd struct {
	ShowIDs bool `help:"Show full ids." name:"show-ids"`
}

func (c *PrayerListCmd) Run(ctx *cli.Context) error {
	rows := ctx.App.PrayerList()
	if len(rows) == 0 {
		fmt.Println("No prayers yet.")
		return nil
	}
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "WRITTEN", "TITLE", "SCRIPTURE", "PRAYER")
	for _, r := range rows {
		id := shortID(r.ID)
		if c.ShowIDs {
			id = r.ID
		}
		title := r.Title
		if r.Edited {
			title += " (edited)"
		}
		table.AddRow(id, r.FormattedDate, title, r.Scripture, r.Preview)
	}
	fmt.Println(table)
	return nil
}

type PrayerDeleteCmd struct {
	ID  string `arg:"" help:"Prayer id."`
	Yes bool   `short:"y" help:"Delete without asking for confirmation."`
}

func (c *PrayerDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(c.ID, prayerIDs(ctx.Prayers.All()))
	if err != nil {
		return err
	}
	rec, _ := ctx.Prayers.Get(id)
	ok, err := cli.Confirm(fmt.Sprintf("Delete prayer %q?", rec.Title), c.Yes)
	if err != nil || !ok {
		if err == nil {
			fmt.Println("Delete cancelled.")
		}
		return err
	}
	if err := ctx.Controller.DeletePrayer(id); err != nil {
		return fmt.Errorf("failed to delete prayer: %w", err)
	}
	fmt.Printf("✓ Deleted prayer %q\n", rec.Title)
	return nil
}
