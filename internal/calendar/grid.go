// Package calendar builds month grids for the journal calendar.
package calendar

import (
	"time"

	"github.com/julianstephens/codelit/internal/constants"
)

// Cell is one square of a month grid. Blank cells have Day == 0.
type Cell struct {
	Day       int
	Date      string
	Weekday   time.Weekday
	IsToday   bool
	HasRecord bool
}

func (c Cell) Blank() bool { return c.Day == 0 }

// Options controls how BuildMonthGrid marks and pads cells.
type Options struct {
	Now       time.Time
	HasRecord func(date string) bool
	// Pad fills trailing blanks up to six full weeks.
	Pad bool
}

type Grid struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// DaysIn returns the number of days in month, accounting for leap years.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// FirstWeekday returns the weekday of the 1st, with Sunday as 0.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

func BuildMonthGrid(year int, month time.Month, opts Options) Grid {
	offset := int(FirstWeekday(year, month))
	days := DaysIn(year, month)
	today := ""
	if !opts.Now.IsZero() {
		today = opts.Now.Format(constants.DateFormat)
	}

	size := offset + days
	if opts.Pad && size < constants.CalendarGridCells {
		size = constants.CalendarGridCells
	}
	cells := make([]Cell, 0, size)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Weekday: time.Weekday(i)})
	}
	for d := 1; d <= days; d++ {
		t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		date := t.Format(constants.DateFormat)
		cell := Cell{
			Day:     d,
			Date:    date,
			Weekday: t.Weekday(),
			IsToday: date == today,
		}
		if opts.HasRecord != nil {
			cell.HasRecord = opts.HasRecord(date)
		}
		cells = append(cells, cell)
	}
	for len(cells) < size {
		cells = append(cells, Cell{Weekday: time.Weekday(len(cells) % constants.CalendarWeekdayCount)})
	}

	return Grid{Year: year, Month: month, Cells: cells}
}

// Weeks chunks the cells into rows of seven. The last row may be short
// when the grid is not padded.
func (g Grid) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i < len(g.Cells); i += constants.CalendarWeekdayCount {
		end := min(i+constants.CalendarWeekdayCount, len(g.Cells))
		weeks = append(weeks, g.Cells[i:end])
	}
	return weeks
}

// Shift moves (year, month) by delta months.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}
