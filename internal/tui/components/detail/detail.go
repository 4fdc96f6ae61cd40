package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/julianstephens/codelit/internal/view"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)
)

// Model shows one meditation in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	Detail   *view.DetailView
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Detail == nil {
		return "No meditation selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetDetail(v view.DetailView) {
	m.Detail = &v
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Detail == nil {
		m.viewport.SetContent("")
		return
	}
	wrap := m.width - 2
	if wrap < 20 {
		wrap = 20
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(m.Detail.Title))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("%s · %s", m.Detail.FormattedDate, m.Detail.Reference)))
	b.WriteString("\n")
	for _, s := range m.Detail.Sections {
		b.WriteString("\n")
		b.WriteString(stageStyle.Render(fmt.Sprintf("%s · %s", s.Stage.Name, s.Stage.Korean)))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(s.Text, wrap))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
