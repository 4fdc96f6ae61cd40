package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/form"
	"github.com/julianstephens/codelit/internal/tui/components/detail"
	"github.com/julianstephens/codelit/internal/tui/components/medlist"
	"github.com/julianstephens/codelit/internal/tui/components/prayerlist"
	"github.com/julianstephens/codelit/internal/view"
)

// clearStatusMsg expires the status line set with the same id.
type clearStatusMsg struct {
	id int
}

type bookItem struct {
	row      view.BookRow
	category string
}

func (i bookItem) Title() string {
	if i.row.Count > 0 {
		return fmt.Sprintf("%s (%d)", i.row.Name, i.row.Count)
	}
	return i.row.Name
}
func (i bookItem) Description() string { return i.category + " · " + i.row.Info }
func (i bookItem) FilterValue() string { return i.row.Name }

type Model struct {
	app  *view.App
	ctrl *form.Controller

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	homeCursor    int
	books         list.Model
	bookDetail    medlist.Model
	bookName      string
	searchInput   textinput.Model
	searchResults medlist.Model
	prayers       prayerlist.Model
	intercessions prayerlist.Model
	detail        detail.Model

	activeForm        *huh.Form
	meditationDraft   *form.MeditationDraft
	prayerDraft       *form.PrayerDraft
	intercessionDraft *form.IntercessionDraft
	answerID          string
	answerText        *string

	detailReturn  constants.SessionState
	deleteLabel   string
	pendingDelete func() error

	status        string
	statusWarning bool
	statusID      int

	// saveTimeout bounds the remote save on submit.
	saveTimeout time.Duration

	quitting bool
	width    int
	height   int
}

func NewModel(app *view.App, ctrl *form.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "제목, 본문, 묵상 내용 검색"
	ti.CharLimit = 100
	ti.Prompt = "/ "

	books := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	books.SetShowTitle(false)
	books.SetShowHelp(false)
	books.SetFilteringEnabled(false)

	m := Model{
		app:           app,
		ctrl:          ctrl,
		state:         app.Nav.Current(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		books:         books,
		bookDetail:    medlist.New("No meditations on this book yet.", 0, 0),
		searchInput:   ti,
		searchResults: medlist.New("No results.", 0, 0),
		prayers:       prayerlist.New(nil, false, "No prayers yet.", 0, 0),
		intercessions: prayerlist.New(nil, true, "No intercessions yet.", 0, 0),
		detail:        detail.New(0, 0),
		saveTimeout:   constants.RemoteSaveTimeout,
	}
	m.refresh()
	return m
}

// refresh reloads every list projection from the stores.
func (m *Model) refresh() {
	var items []list.Item
	for _, t := range m.app.BookList() {
		for _, c := range t.Categories {
			for _, b := range c.Books {
				items = append(items, bookItem{row: b, category: t.Title + " · " + c.Title})
			}
		}
	}
	m.books.SetItems(items)

	m.prayers.SetItems(prayerItems(m.app.PrayerList()))
	m.intercessions.SetItems(intercessionItems(m.app.IntercessionGroups()))

	if m.bookName != "" {
		m.bookDetail.SetRows(m.app.BookDetail(m.bookName).Rows)
	}
	if term := m.searchInput.Value(); term != "" {
		m.searchResults.SetRows(m.app.SearchResults(term).Rows)
	}
	if m.homeCursor >= len(m.app.Home().Recent) {
		m.homeCursor = 0
	}
}

func prayerItems(rows []view.PrayerRow) []prayerlist.Item {
	items := make([]prayerlist.Item, 0, len(rows))
	for _, r := range rows {
		desc := r.FormattedDate
		if r.Scripture != "" {
			desc += " · " + r.Scripture
		}
		if r.Edited {
			desc += " (수정됨)"
		}
		items = append(items, prayerlist.Item{ID: r.ID, Heading: r.Title, Detail: desc + "  " + r.Preview})
	}
	return items
}

func intercessionItems(groups []view.IntercessionGroup) []prayerlist.Item {
	var items []prayerlist.Item
	for _, g := range groups {
		for _, r := range g.Rows {
			desc := r.Preview
			if r.Answered {
				desc = fmt.Sprintf("응답 %s · %s", r.AnsweredOn, view.Preview(r.Answer, constants.PrayerPreviewLength))
			}
			items = append(items, prayerlist.Item{
				ID:       r.ID,
				Heading:  fmt.Sprintf("[%s] %s", g.Label, r.Title),
				Detail:   desc,
				Answered: r.Answered,
			})
		}
	}
	return items
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHome:
		keys = append(keys, m.keys.Add, m.keys.Enter)
	case constants.StateCalendar:
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Enter)
	case constants.StateMeditationPrayer, constants.StateIntercessoryPrayer:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
		if m.state == constants.StateIntercessoryPrayer {
			keys = append(keys, m.keys.Answer)
		}
	case constants.StateSearch:
		keys = append(keys, m.keys.Search, m.keys.Enter)
	case constants.StateDetail:
		keys = append(keys, m.keys.Edit, m.keys.Delete, m.keys.Back)
	case constants.StateBookDetail:
		keys = append(keys, m.keys.Enter, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// setStatus shows msg until a single tick clears it. A newer status
// invalidates the pending tick through the id.
func (m *Model) setStatus(msg string, warning bool) tea.Cmd {
	m.statusID++
	m.status = msg
	m.statusWarning = warning
	id := m.statusID
	return tea.Tick(constants.StatusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// contentHeight is what is left after tabs, status and help.
func (m Model) contentHeight() int {
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) resize() {
	w, h := m.width-4, m.contentHeight()
	m.books.SetSize(w, h)
	m.bookDetail.SetSize(w, h-2)
	m.searchResults.SetSize(w, h-2)
	m.prayers.SetSize(w, h)
	m.intercessions.SetSize(w, h)
	m.detail.SetSize(w, h)
	m.searchInput.Width = w - 4
}
