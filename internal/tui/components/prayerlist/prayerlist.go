package prayerlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type AddMsg struct{}

type EditMsg struct {
	ID string
}

type DeleteMsg struct {
	ID    string
	Title string
}

type AnswerMsg struct {
	ID    string
	Title string
}

type Item struct {
	ID       string
	Heading  string
	Detail   string
	Answered bool
}

func (i Item) Title() string {
	if i.Answered {
		return "✓ " + i.Heading
	}
	return i.Heading
}
func (i Item) Description() string { return i.Detail }
func (i Item) FilterValue() string { return i.Heading }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Answer key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Answer: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "answered"),
		),
	}
}

// Model lists prayers. Answerable lists also offer the Answer key.
type Model struct {
	list       list.Model
	keys       KeyMap
	answerable bool
	empty      string
}

func New(items []Item, answerable bool, empty string, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	extra := []key.Binding{keys.Add, keys.Edit, keys.Delete}
	if answerable {
		extra = append(extra, keys.Answer)
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return extra }
	l.AdditionalFullHelpKeys = func() []key.Binding { return extra }

	return Model{list: l, keys: keys, answerable: answerable, empty: empty}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditMsg{ID: i.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteMsg{ID: i.ID, Title: i.Heading} }
			}
		case m.answerable && key.Matches(msg, m.keys.Answer):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AnswerMsg{ID: i.ID, Title: i.Heading} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + m.empty + "\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
