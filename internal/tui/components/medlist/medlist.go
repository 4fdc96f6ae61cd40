// Package medlist is a selectable list of meditation rows.
package medlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/codelit/internal/view"
)

// OpenMsg asks the parent to show the meditation for Date.
type OpenMsg struct {
	Date string
}

type Item struct {
	Row view.Row
}

func (i Item) Title() string       { return i.Row.FormattedDate + " · " + i.Row.Title }
func (i Item) Description() string { return i.Row.Reference + "  " + i.Row.Preview }
func (i Item) FilterValue() string { return i.Row.Title }

type Model struct {
	list  list.Model
	open  key.Binding
	empty string
}

func New(empty string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return Model{
		list:  l,
		open:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		empty: empty,
	}
}

func (m *Model) SetRows(rows []view.Row) {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = Item{Row: r}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.open) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			return m, func() tea.Msg { return OpenMsg{Date: i.Row.Date} }
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
