package prayers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/form"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/tui"
)

func intercessionIDs(list []models.Intercession) []string {
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids
}

type IntercessionAddCmd struct {
	Title       string `short:"t" help:"Who or what the prayer is for."`
	Category    string `short:"k" help:"Category (family|friends|church|nation|missions|other, or any label)." default:"other"`
	Scripture   string `short:"s" help:"Scripture the prayer is based on."`
	Content     string `short:"c" help:"Prayer text."`
	Reflection  string `help:"Reflection."`
	Interactive bool   `short:"i" help:"Write the prayer in an interactive form."`
}

func (c *IntercessionAddCmd) Run(ctx *cli.Context) error {
	d := form.NewIntercessionDraft()
	d.Title, d.Scripture, d.Content, d.Reflection = c.Title, c.Scripture, c.Content, c.Reflection
	if c.Category != "" {
		d.Category = models.Category(c.Category)
	}
	if c.Interactive {
		if err := tui.NewIntercessionForm(&d).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}
	res, err := ctx.Controller.SubmitIntercession(d)
	if err != nil {
		return validationHint(err)
	}
	fmt.Printf("✓ Saved intercession %q under %s (%s)\n", res.Record.Title, res.Record.Category.Label(), shortID(res.Record.ID))
	return nil
}

type IntercessionEditCmd struct {
	ID          string  `arg:"" help:"Intercession id, full or as shown by 'intercession list'."`
	Title       *string `short:"t" help:"New title."`
	Category    *string `short:"k" help:"New category."`
	Scripture   *string `short:"s" help:"New scripture."`
	Content     *string `short:"c" help:"New prayer text."`
	Reflection  *string `help:"New reflection."`
	Interactive bool    `short:"i" help:"Edit in an interactive form."`
}

func (c *IntercessionEditCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(c.ID, intercessionIDs(ctx.Intercessions.All()))
	if err != nil {
		return err
	}
	rec, _ := ctx.Intercessions.Get(id)
	d := form.EditIntercessionDraft(rec)
	applyPrayerFlags(&d.PrayerDraft, c.Title, c.Scripture, c.Content, c.Reflection)
	if c.Category != nil {
		d.Category = models.Category(*c.Category)
	}
	if c.Interactive {
		if err := tui.NewIntercessionForm(&d).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}
	res, err := ctx.Controller.SubmitIntercession(d)
	if err != nil {
		return validationHint(err)
	}
	fmt.Printf("✓ Updated intercession %q\n", res.Record.Title)
	return nil
}

type IntercessionListCmd struct {
	Open    bool `help:"Only show prayers that are not answered yet."`
	ShowIDs bool `help:"Show full ids." name:"show-ids"`
}

func (c *IntercessionListCmd) Run(ctx *cli.Context) error {
	groups := ctx.App.IntercessionGroups()
	if len(groups) == 0 {
		fmt.Println("No intercessions yet.")
		return nil
	}
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("", "ID", "TITLE", "STATUS", "PRAYER")
	for _, g := range groups {
		table.AddRow(g.Label, "", "", "", "")
		for _, r := range g.Rows {
			if c.Open && r.Answered {
				continue
			}
			id := shortID(r.ID)
			if c.ShowIDs {
				id = r.ID
			}
			status := "기도 중"
			if r.Answered {
				status = "응답됨 " + r.AnsweredOn
			}
			table.AddRow("", id, r.Title, status, r.Preview)
		}
	}
	fmt.Println(table)

	total, answered := ctx.Intercessions.Counts()
	fmt.Printf("\n%d prayers, %d answered\n", total, answered)
	return nil
}

type IntercessionAnswerCmd struct {
	ID     string `arg:"" help:"Intercession id."`
	Answer string `arg:"" help:"How the prayer was answered."`
}

func (c *IntercessionAnswerCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(c.ID, intercessionIDs(ctx.Intercessions.All()))
	if err != nil {
		return err
	}
	res, err := ctx.Controller.MarkAnswered(id, c.Answer)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Marked %q answered on %s\n", res.Record.Title, res.Record.AnsweredAt.Format("2006-01-02"))
	return nil
}

type IntercessionDeleteCmd struct {
	ID  string `arg:"" help:"Intercession id."`
	Yes bool   `short:"y" help:"Delete without asking for confirmation."`
}

func (c *IntercessionDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(c.ID, intercessionIDs(ctx.Intercessions.All()))
	if err != nil {
		return err
	}
	rec, _ := ctx.Intercessions.Get(id)
	ok, err := cli.Confirm(fmt.Sprintf("Delete intercession %q?", rec.Title), c.Yes)
	if err != nil || !ok {
		if err == nil {
			fmt.Println("Delete cancelled.")
		}
		return err
	}
	if err := ctx.Controller.DeleteIntercession(id); err != nil {
		return fmt.Errorf("failed to delete intercession: %w", err)
	}
	fmt.Printf("✓ Deleted intercession %q\n", rec.Title)
	return nil
}
