package meditations

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/codelit/internal/calendar"
	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/view"
)

const tableWidth = 60

func rowsTable(rows []view.Row) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = tableWidth
	table.Wrap = true
	table.AddRow("DATE", "REFERENCE", "TITLE", "PREVIEW")
	for _, r := range rows {
		table.AddRow(r.Date, r.Reference, r.Title, r.Preview)
	}
	return table
}

type RecentCmd struct {
	Page int `short:"p" help:"Page number, newest first." default:"1"`
	Size int `short:"n" help:"Meditations per page." default:"10"`
}

func (c *RecentCmd) Run(ctx *cli.Context) error {
	if ctx.Journal.Len() == 0 {
		fmt.Println("No meditations yet. Start with 'codelit add -i'.")
		return nil
	}
	rows, pages := ctx.App.RecentPage(c.Page, c.Size)
	if len(rows) == 0 {
		return fmt.Errorf("page %d is out of range (1-%d)", c.Page, pages)
	}
	fmt.Println(rowsTable(rows))
	fmt.Printf("\nPage %d of %d (%d meditations)\n", c.Page, pages, ctx.Journal.Len())
	return nil
}

type SearchCmd struct {
	Term string `arg:"" help:"Text to search for in titles, references and CODE sections."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	res := ctx.App.SearchResults(c.Term)
	if len(res.Rows) == 0 {
		fmt.Printf("No meditations match %q\n", c.Term)
		return nil
	}
	fmt.Println(rowsTable(res.Rows))
	if len(res.Rows) == constants.SearchLimit {
		fmt.Printf("\nShowing the first %d matches.\n", constants.SearchLimit)
	}
	return nil
}

type BooksCmd struct {
	All bool `short:"a" help:"Include books without meditations."`
}

func (c *BooksCmd) Run(ctx *cli.Context) error {
	table := uitable.New()
	table.AddRow("", "BOOK", "SIZE", "MEDITATIONS")
	for _, t := range ctx.App.BookList() {
		table.AddRow(t.Title, "", t.Info, "")
		for _, cat := range t.Categories {
			var shown []view.BookRow
			for _, b := range cat.Books {
				if b.Count > 0 || c.All {
					shown = append(shown, b)
				}
			}
			if len(shown) == 0 {
				continue
			}
			table.AddRow("  "+cat.Title, "", "", "")
			for _, b := range shown {
				table.AddRow("", b.Name, b.Info, b.Count)
			}
		}
	}
	fmt.Println(table)
	return nil
}

type BookCmd struct {
	Book string `arg:"" help:"Book name, e.g. 요한복음."`
}

func (c *BookCmd) Run(ctx *cli.Context) error {
	detail := ctx.App.BookDetail(c.Book)
	if len(detail.Rows) == 0 {
		fmt.Printf("No meditations on %s yet.\n", detail.Book)
		return nil
	}
	fmt.Printf("%s (%d)\n\n", detail.Book, len(detail.Rows))
	fmt.Println(rowsTable(detail.Rows))
	return nil
}

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM), defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, use YYYY-MM", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	dates := ctx.Journal.Dates()
	grid := calendar.BuildMonthGrid(year, month, calendar.Options{
		Now:       now,
		HasRecord: func(d string) bool { return dates[d] },
	})
	fmt.Print(RenderGrid(grid))
	return nil
}

// RenderGrid draws a month as text. Days with a meditation get a '*',
// today is bracketed.
func RenderGrid(g calendar.Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", view.MonthTitle(g.Year, g.Month))
	b.WriteString("  일   월   화   수   목   금   토\n")
	count := 0
	for _, week := range g.Weeks() {
		for _, cell := range week {
			if cell.Blank() {
				b.WriteString("     ")
				continue
			}
			mark := " "
			if cell.HasRecord {
				mark = "*"
				count++
			}
			if cell.IsToday {
				fmt.Fprintf(&b, "[%2d]%s", cell.Day, mark)
			} else {
				fmt.Fprintf(&b, " %2d %s", cell.Day, mark)
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d meditations this month\n", count)
	return b.String()
}
