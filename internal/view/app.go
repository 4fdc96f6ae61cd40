package view

import (
	"strings"
	"time"

	"github.com/julianstephens/codelit/internal/calendar"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/journal"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/prayer"
)

// App is the session state shared by every view: the stores, navigation,
// and the clock.
type App struct {
	Journal       *journal.Store
	Prayers       *prayer.Store[models.Prayer, *models.Prayer]
	Intercessions *prayer.IntercessionStore
	Nav           *Navigator

	Now func() time.Time
}

func NewApp(j *journal.Store, p *prayer.Store[models.Prayer, *models.Prayer], i *prayer.IntercessionStore) *App {
	return &App{
		Journal:       j,
		Prayers:       p,
		Intercessions: i,
		Nav:           NewNavigator(time.Now()),
		Now:           time.Now,
	}
}

// Row is one meditation in a list or table.
type Row struct {
	Date          string
	FormattedDate string
	Reference     string
	Title         string
	Preview       string
}

func toRows(list []models.Meditation, previewLen int) []Row {
	rows := make([]Row, 0, len(list))
	for _, m := range list {
		rows = append(rows, Row{
			Date:          m.Date,
			FormattedDate: FormatDate(m.Date),
			Reference:     m.BibleReference,
			Title:         m.Title,
			Preview:       Preview(m.Capture, previewLen),
		})
	}
	return rows
}

type CalendarView struct {
	Title    string
	Grid     calendar.Grid
	Selected string
	// Record is the selected day's meditation when one exists.
	Record *models.Meditation
}

// CalendarView projects the navigator's month with record markers.
func (a *App) CalendarView() CalendarView {
	dates := a.Journal.Dates()
	v := CalendarView{
		Title: MonthTitle(a.Nav.Year, a.Nav.Month),
		Grid: calendar.BuildMonthGrid(a.Nav.Year, a.Nav.Month, calendar.Options{
			Now:       a.Now(),
			HasRecord: func(d string) bool { return dates[d] },
			Pad:       true,
		}),
		Selected: a.Nav.SelectedDate(),
	}
	if rec, ok := a.Journal.Get(v.Selected); ok {
		v.Record = &rec
	}
	return v
}

type BookRow struct {
	Name  string
	Info  string
	Count int
}

type CategoryView struct {
	Title string
	Books []BookRow
}

type TestamentView struct {
	Title      string
	Info       string
	Categories []CategoryView
}

// BookList annotates every canonical book with its meditation count.
func (a *App) BookList() []TestamentView {
	out := make([]TestamentView, 0, len(models.Canon))
	for _, t := range models.Canon {
		tv := TestamentView{Title: t.Title, Info: t.Info()}
		for _, c := range t.Categories {
			cv := CategoryView{Title: c.Title}
			for _, b := range c.Books {
				cv.Books = append(cv.Books, BookRow{
					Name:  b.Name,
					Info:  b.Info(),
					Count: len(a.Journal.FilterByBook(b.Name)),
				})
			}
			tv.Categories = append(tv.Categories, cv)
		}
		out = append(out, tv)
	}
	return out
}

type BookDetail struct {
	Book string
	Rows []Row
}

// BookDetail lists a book's meditations, newest first.
func (a *App) BookDetail(book string) BookDetail {
	name := book
	if fields := strings.Fields(book); len(fields) > 0 {
		name = fields[0]
	}
	return BookDetail{
		Book: name,
		Rows: toRows(a.Journal.FilterByBook(book), constants.ResultPreviewLength),
	}
}

// RecentTable returns the n newest meditations with short previews.
func (a *App) RecentTable(n int) []Row {
	return toRows(a.Journal.Recent(n), constants.RecentPreviewLength)
}

// RecentPage pages through every meditation, newest first.
func (a *App) RecentPage(page, pageSize int) ([]Row, int) {
	all := a.Journal.Sorted()
	return toRows(journal.Paginate(all, pageSize, page), constants.RecentPreviewLength), journal.TotalPages(len(all), pageSize)
}

type SearchView struct {
	Term string
	Rows []Row
}

func (a *App) SearchResults(term string) SearchView {
	return SearchView{Term: term, Rows: toRows(a.Journal.Search(term), constants.ResultPreviewLength)}
}

type PrayerRow struct {
	ID            string
	Title         string
	FormattedDate string
	Scripture     string
	Preview       string
	Edited        bool
}

func prayerRow(p models.Prayer) PrayerRow {
	return PrayerRow{
		ID:            p.ID,
		Title:         p.Title,
		FormattedDate: FormatTime(p.Date),
		Scripture:     p.Scripture,
		Preview:       Preview(p.Content, constants.PrayerPreviewLength),
		Edited:        p.UpdatedAt != nil,
	}
}

// PrayerList is the flat, newest-first meditation prayer list.
func (a *App) PrayerList() []PrayerRow {
	list := a.Prayers.Sorted()
	rows := make([]PrayerRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, prayerRow(p))
	}
	return rows
}

type IntercessionRow struct {
	PrayerRow
	Answered   bool
	Answer     string
	AnsweredOn string
}

type IntercessionGroup struct {
	Category models.Category
	Label    string
	Rows     []IntercessionRow
}

// IntercessionGroups groups intercessions by category in display order.
func (a *App) IntercessionGroups() []IntercessionGroup {
	groups := a.Intercessions.ByCategory()
	out := make([]IntercessionGroup, 0, len(groups))
	for _, g := range groups {
		ig := IntercessionGroup{Category: g.Category, Label: g.Category.Label()}
		for _, rec := range g.Items {
			row := IntercessionRow{
				PrayerRow: prayerRow(rec.Prayer),
				Answered:  rec.Answered,
				Answer:    rec.Answer,
			}
			if rec.AnsweredAt != nil {
				row.AnsweredOn = FormatTime(*rec.AnsweredAt)
			}
			ig.Rows = append(ig.Rows, row)
		}
		out = append(out, ig)
	}
	return out
}

type HomeView struct {
	Stages []models.Stage
	Recent []Row
	Total  int
}

func (a *App) Home() HomeView {
	return HomeView{
		Stages: models.Stages,
		Recent: a.RecentTable(constants.HomeRecentCount),
		Total:  a.Journal.Len(),
	}
}

type Section struct {
	Stage models.Stage
	Text  string
}

type DetailView struct {
	Date          string
	FormattedDate string
	Reference     string
	Title         string
	Sections      []Section
}

// Detail is the full meditation for date.
func (a *App) Detail(date string) (DetailView, bool) {
	m, ok := a.Journal.Get(date)
	if !ok {
		return DetailView{}, false
	}
	v := DetailView{
		Date:          m.Date,
		FormattedDate: FormatDate(m.Date),
		Reference:     m.BibleReference,
		Title:         m.Title,
	}
	for _, st := range models.Stages {
		v.Sections = append(v.Sections, Section{Stage: st, Text: m.StageText(st.Key)})
	}
	return v, true
}
