// Package view turns store state into display structures. Nothing here
// mutates a store.
package view

import (
	"fmt"
	"time"

	"github.com/julianstephens/codelit/internal/calendar"
	"github.com/julianstephens/codelit/internal/constants"
)

var viewNames = [constants.ViewCount]string{
	constants.StateHome:               "Home",
	constants.StateCalendar:           "Calendar",
	constants.StateBibleList:          "Bible",
	constants.StateMeditationPrayer:   "Prayers",
	constants.StateIntercessoryPrayer: "Intercession",
	constants.StateSearch:             "Search",
}

// ViewName returns the tab label of a top-level view.
func ViewName(s constants.SessionState) string {
	if s < 0 || int(s) >= constants.ViewCount {
		return ""
	}
	return viewNames[s]
}

// Navigator tracks the current top-level view and the displayed month.
// It starts on Home and only moves on explicit calls.
type Navigator struct {
	current constants.SessionState

	Year  int
	Month time.Month
	// Day is the selected day of the displayed month, 0 for none.
	Day int
}

func NewNavigator(now time.Time) *Navigator {
	return &Navigator{
		current: constants.StateHome,
		Year:    now.Year(),
		Month:   now.Month(),
		Day:     now.Day(),
	}
}

func (n *Navigator) Current() constants.SessionState {
	return n.current
}

// Go switches to a top-level view.
func (n *Navigator) Go(s constants.SessionState) error {
	if s < 0 || int(s) >= constants.ViewCount {
		return fmt.Errorf("not a navigable view: %d", s)
	}
	n.current = s
	return nil
}

// Next cycles to the following tab.
func (n *Navigator) Next() {
	n.current = (n.current + 1) % constants.ViewCount
}

// Prev cycles to the preceding tab.
func (n *Navigator) Prev() {
	n.current = (n.current + constants.ViewCount - 1) % constants.ViewCount
}

// ShiftMonth moves the displayed month and clamps the selected day.
func (n *Navigator) ShiftMonth(delta int) {
	n.Year, n.Month = calendar.Shift(n.Year, n.Month, delta)
	if days := calendar.DaysIn(n.Year, n.Month); n.Day > days {
		n.Day = days
	}
	if n.Day < 1 {
		n.Day = 1
	}
}

// MoveDay moves the selection by delta days, crossing into adjacent months.
func (n *Navigator) MoveDay(delta int) {
	day := max(n.Day, 1)
	t := time.Date(n.Year, n.Month, day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, delta)
	n.Year, n.Month, n.Day = t.Year(), t.Month(), t.Day()
}

// SelectedDate returns the selected day as YYYY-MM-DD, or "".
func (n *Navigator) SelectedDate() string {
	if n.Day < 1 {
		return ""
	}
	return time.Date(n.Year, n.Month, n.Day, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
}

// Jump displays the month containing t and selects its day.
func (n *Navigator) Jump(t time.Time) {
	n.Year, n.Month, n.Day = t.Year(), t.Month(), t.Day()
}
