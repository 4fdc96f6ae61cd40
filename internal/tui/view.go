package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/codelit/internal/calendar"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/view"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateHome:
		content = m.viewHome()
	case constants.StateCalendar:
		content = m.viewCalendar()
	case constants.StateBibleList:
		content = docStyle.Render(m.books.View())
	case constants.StateBookDetail:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.bookName),
			m.bookDetail.View(),
		))
	case constants.StateMeditationPrayer:
		content = docStyle.Render(m.prayers.View())
	case constants.StateIntercessoryPrayer:
		content = m.viewIntercessions()
	case constants.StateSearch:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.searchInput.View(),
			m.searchResults.View(),
		))
	case constants.StateDetail:
		content = docStyle.Render(m.detail.View())
	case constants.StateEditMeditation, constants.StateEditPrayer, constants.StateEditIntercession, constants.StateAnswer:
		content = docStyle.Render(m.activeForm.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	current := m.app.Nav.Current()
	for i := constants.SessionState(0); i < constants.ViewCount; i++ {
		if current == i {
			tabs = append(tabs, activeTabStyle.Render(view.ViewName(i)))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(view.ViewName(i)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusWarning {
		return warningStyle.Render("  " + m.status)
	}
	return statusStyle.Render("  " + m.status)
}

func (m Model) viewHome() string {
	home := m.app.Home()

	var cards []string
	for _, st := range home.Stages {
		cards = append(cards, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(st.Name[:1]+" · "+st.Name),
			st.Korean,
			mutedStyle.Render(st.Description),
		)))
	}

	var recent strings.Builder
	recent.WriteString(titleStyle.Render(fmt.Sprintf("최근 묵상 (총 %d)", home.Total)))
	recent.WriteString("\n")
	if len(home.Recent) == 0 {
		recent.WriteString(mutedStyle.Render("아직 묵상이 없습니다. 'a'를 눌러 오늘의 묵상을 시작하세요."))
	}
	for i, r := range home.Recent {
		line := fmt.Sprintf("%s  %s  %s", r.FormattedDate, r.Title, mutedStyle.Render(r.Reference))
		if i == m.homeCursor {
			line = selectedRowStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		recent.WriteString(line + "\n")
		recent.WriteString("    " + mutedStyle.Render(r.Preview) + "\n")
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Bible CODE 묵상"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		recent.String(),
	))
}

var weekdayHeader = []string{"일", "월", "화", "수", "목", "금", "토"}

func (m Model) viewCalendar() string {
	cv := m.app.CalendarView()

	var header []string
	for i, d := range weekdayHeader {
		if i == 0 {
			header = append(header, sundayStyle.Render(d))
		} else {
			header = append(header, dayStyle.Render(d))
		}
	}
	rows := []string{
		titleStyle.Render(cv.Title),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for _, week := range cv.Grid.Weeks() {
		var cells []string
		for _, c := range week {
			cells = append(cells, renderCell(c, cv.Selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	rows = append(rows, "")
	if cv.Record != nil {
		rows = append(rows,
			fmt.Sprintf("%s  %s", view.FormatDate(cv.Selected), titleStyle.Render(cv.Record.Title)),
			mutedStyle.Render(cv.Record.BibleReference+"  "+view.Preview(cv.Record.Capture, constants.RecentPreviewLength)),
		)
	} else {
		rows = append(rows,
			view.FormatDate(cv.Selected),
			mutedStyle.Render("기록이 없습니다. enter를 눌러 묵상을 작성하세요."),
		)
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderCell(c calendar.Cell, selected string) string {
	if c.Blank() {
		return dayStyle.Render("")
	}
	label := fmt.Sprintf("%d", c.Day)
	if c.HasRecord {
		label += "•"
	}
	switch {
	case c.Date == selected:
		return selectedDayStyle.Render(label)
	case c.IsToday:
		return todayStyle.Render(label)
	case c.HasRecord:
		return recordDayStyle.Render(label)
	case c.Weekday == time.Sunday:
		return sundayStyle.Render(label)
	default:
		return dayStyle.Render(label)
	}
}

func (m Model) viewIntercessions() string {
	total, answered := m.app.Intercessions.Counts()
	summary := mutedStyle.Render(fmt.Sprintf("기도 %d · 응답 %d", total, answered))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, summary, m.intercessions.View()))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("'%s'을(를) 삭제할까요?", m.deleteLabel)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
