package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/form"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/tui/components/medlist"
	"github.com/julianstephens/codelit/internal/tui/components/prayerlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		if m.activeForm != nil {
			f, cmd := m.activeForm.Update(msg)
			if ff, ok := f.(*huh.Form); ok {
				m.activeForm = ff
			}
			return m, cmd
		}
		return m, nil
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	switch m.state {
	case constants.StateEditMeditation, constants.StateEditPrayer, constants.StateEditIntercession, constants.StateAnswer:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case medlist.OpenMsg:
		return m, m.openDetail(msg.Date)
	case prayerlist.AddMsg:
		return m, m.startPrayerForm("")
	case prayerlist.EditMsg:
		return m, m.startPrayerForm(msg.ID)
	case prayerlist.DeleteMsg:
		m.confirmPrayerDelete(msg.ID, msg.Title)
		return m, nil
	case prayerlist.AnswerMsg:
		return m, m.startAnswerForm(msg.ID, msg.Title)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateComponent(msg)
	}

	if m.state == constants.StateSearch && m.searchInput.Focused() {
		switch keyMsg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.searchInput.Blur()
			return m, nil
		case "enter":
			m.searchResults.SetRows(m.app.SearchResults(m.searchInput.Value()).Rows)
			m.searchInput.Blur()
			return m, nil
		case "tab", "shift+tab":
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(keyMsg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab), key.Matches(keyMsg, m.keys.ShiftTab):
		if m.state >= constants.ViewCount {
			// Sub-views are left with esc
			return m, nil
		}
		if key.Matches(keyMsg, m.keys.Tab) {
			m.app.Nav.Next()
		} else {
			m.app.Nav.Prev()
		}
		m.state = m.app.Nav.Current()
		if m.state == constants.StateSearch {
			return m, m.searchInput.Focus()
		}
		return m, nil
	}

	switch m.state {
	case constants.StateHome:
		return m.updateHome(keyMsg)
	case constants.StateCalendar:
		return m.updateCalendar(keyMsg)
	case constants.StateBibleList:
		if key.Matches(keyMsg, m.keys.Enter) {
			if it, ok := m.books.SelectedItem().(bookItem); ok {
				m.bookName = it.row.Name
				m.bookDetail.SetRows(m.app.BookDetail(it.row.Name).Rows)
				m.state = constants.StateBookDetail
			}
			return m, nil
		}
	case constants.StateBookDetail:
		if key.Matches(keyMsg, m.keys.Back) {
			m.state = constants.StateBibleList
			return m, nil
		}
	case constants.StateSearch:
		if key.Matches(keyMsg, m.keys.Search) {
			return m, m.searchInput.Focus()
		}
	case constants.StateDetail:
		return m.updateDetail(keyMsg)
	}
	return m.updateComponent(msg)
}

// updateComponent hands msg to whichever component owns the current view.
func (m Model) updateComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateBibleList:
		m.books, cmd = m.books.Update(msg)
	case constants.StateBookDetail:
		m.bookDetail, cmd = m.bookDetail.Update(msg)
	case constants.StateMeditationPrayer:
		m.prayers, cmd = m.prayers.Update(msg)
	case constants.StateIntercessoryPrayer:
		m.intercessions, cmd = m.intercessions.Update(msg)
	case constants.StateSearch:
		if m.searchInput.Focused() {
			m.searchInput, cmd = m.searchInput.Update(msg)
		} else {
			m.searchResults, cmd = m.searchResults.Update(msg)
		}
	case constants.StateDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recent := m.app.Home().Recent
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.homeCursor < len(recent)-1 {
			m.homeCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.homeCursor < len(recent) {
			return m, m.openDetail(recent[m.homeCursor].Date)
		}
	case key.Matches(msg, m.keys.Add):
		return m, m.startMeditationForm(m.app.Now().Format(constants.DateFormat))
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.app.Nav
	switch {
	case key.Matches(msg, m.keys.Left):
		nav.MoveDay(-1)
	case key.Matches(msg, m.keys.Right):
		nav.MoveDay(1)
	case key.Matches(msg, m.keys.Up):
		nav.MoveDay(-7)
	case key.Matches(msg, m.keys.Down):
		nav.MoveDay(7)
	case key.Matches(msg, m.keys.PrevMonth):
		nav.ShiftMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		nav.ShiftMonth(1)
	case key.Matches(msg, m.keys.Today):
		nav.Jump(m.app.Now())
	case key.Matches(msg, m.keys.Enter):
		return m, m.openDetail(nav.SelectedDate())
	case key.Matches(msg, m.keys.Add):
		return m, m.startMeditationForm(nav.SelectedDate())
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail.Detail == nil {
		m.state = m.detailReturn
		return m, nil
	}
	date := m.detail.Detail.Date
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = m.detailReturn
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		return m, m.startMeditationForm(date)
	case key.Matches(msg, m.keys.Delete):
		m.deleteLabel = m.detail.Detail.Title
		m.pendingDelete = func() error { return m.ctrl.DeleteMeditation(date) }
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	}
	return m.updateComponent(msg)
}

// openDetail shows the meditation for date, or opens a new form
// pre-filled with that date when there is none.
func (m *Model) openDetail(date string) tea.Cmd {
	v, ok := m.app.Detail(date)
	if !ok {
		return m.startMeditationForm(date)
	}
	if m.state != constants.StateDetail {
		m.detailReturn = m.state
	}
	m.detail.SetDetail(v)
	m.state = constants.StateDetail
	return nil
}

func (m *Model) enterForm(state constants.SessionState, f *huh.Form) tea.Cmd {
	m.previousState = m.state
	m.state = state
	m.activeForm = f
	return f.Init()
}

// startMeditationForm edits the meditation for date, or starts a new one.
func (m *Model) startMeditationForm(date string) tea.Cmd {
	d := form.NewMeditationDraft(date)
	if rec, ok := m.app.Journal.Get(date); ok {
		d = form.EditMeditationDraft(rec)
	}
	m.meditationDraft = &d
	return m.enterForm(constants.StateEditMeditation, NewMeditationForm(m.meditationDraft))
}

func (m *Model) startPrayerForm(id string) tea.Cmd {
	if m.state == constants.StateIntercessoryPrayer {
		d := form.NewIntercessionDraft()
		if rec, ok := m.app.Intercessions.Get(id); ok {
			d = form.EditIntercessionDraft(rec)
		}
		m.intercessionDraft = &d
		return m.enterForm(constants.StateEditIntercession, NewIntercessionForm(m.intercessionDraft))
	}
	d := form.PrayerDraft{}
	if rec, ok := m.app.Prayers.Get(id); ok {
		d = form.EditPrayerDraft(rec)
	}
	m.prayerDraft = &d
	return m.enterForm(constants.StateEditPrayer, NewPrayerForm(m.prayerDraft))
}

func (m *Model) startAnswerForm(id, title string) tea.Cmd {
	answer := ""
	if rec, ok := m.app.Intercessions.Get(id); ok {
		answer = rec.Answer
	}
	m.answerID = id
	m.answerText = &answer
	return m.enterForm(constants.StateAnswer, NewAnswerForm(title, m.answerText))
}

func (m *Model) confirmPrayerDelete(id, title string) {
	m.deleteLabel = title
	if m.state == constants.StateIntercessoryPrayer {
		m.pendingDelete = func() error { return m.ctrl.DeleteIntercession(id) }
	} else {
		m.pendingDelete = func() error { return m.ctrl.DeletePrayer(id) }
	}
	m.previousState = m.state
	m.state = constants.StateConfirmDelete
}

// rebuildForm reopens the form for the current draft after a rejected submit.
func (m *Model) rebuildForm() *huh.Form {
	switch m.state {
	case constants.StateEditMeditation:
		return NewMeditationForm(m.meditationDraft)
	case constants.StateEditPrayer:
		return NewPrayerForm(m.prayerDraft)
	case constants.StateEditIntercession:
		return NewIntercessionForm(m.intercessionDraft)
	default:
		return NewAnswerForm("", m.answerText)
	}
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.activeForm = nil
	m.meditationDraft = nil
	m.prayerDraft = nil
	m.intercessionDraft = nil
	m.answerText = nil
	m.answerID = ""
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	f, cmd := m.activeForm.Update(msg)
	if ff, ok := f.(*huh.Form); ok {
		m.activeForm = ff
	}

	switch m.activeForm.State {
	case huh.StateCompleted:
		return m, m.submitForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm commits the active draft. A validation error keeps the form
// open; anything else closes it with a status message.
func (m *Model) submitForm() tea.Cmd {
	var (
		err      error
		warning  string
		done     string
		reopenAt string
	)
	switch m.state {
	case constants.StateEditMeditation:
		var res form.Result[models.Meditation]
		ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
		res, err = m.ctrl.SubmitMeditation(ctx, *m.meditationDraft)
		cancel()
		warning = res.Warning
		done = "묵상을 저장했습니다."
		if err == nil && m.previousState == constants.StateDetail {
			reopenAt = res.Record.Date
		}
	case constants.StateEditPrayer:
		_, err = m.ctrl.SubmitPrayer(*m.prayerDraft)
		done = "기도를 저장했습니다."
	case constants.StateEditIntercession:
		_, err = m.ctrl.SubmitIntercession(*m.intercessionDraft)
		done = "중보기도를 저장했습니다."
	case constants.StateAnswer:
		_, err = m.ctrl.MarkAnswered(m.answerID, *m.answerText)
		done = "응답을 기록했습니다."
	}

	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			m.activeForm = m.rebuildForm()
			return tea.Batch(m.activeForm.Init(), m.setStatus(verr.Error(), true))
		}
		logger.Error("Save failed", "error", err)
		m.closeForm()
		return m.setStatus("저장 실패: "+err.Error(), true)
	}

	m.closeForm()
	m.refresh()
	if reopenAt != "" {
		m.state = m.detailReturn
		m.openDetail(reopenAt)
	}
	if warning != "" {
		return m.setStatus(warning, true)
	}
	return m.setStatus(done, false)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		err := m.pendingDelete()
		m.pendingDelete = nil
		m.state = m.previousState
		if m.state == constants.StateDetail {
			m.state = m.detailReturn
		}
		if err != nil {
			logger.Error("Delete failed", "error", err)
			return m, m.setStatus("삭제 실패: "+err.Error(), true)
		}
		m.refresh()
		return m, m.setStatus("삭제했습니다.", false)
	case "n", "N", "esc":
		m.pendingDelete = nil
		m.state = m.previousState
	}
	return m, nil
}
