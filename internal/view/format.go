package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/codelit/internal/constants"
)

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatDate renders YYYY-MM-DD as e.g. "2024년 3월 5일 (화)". Unparseable
// input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return formatDay(t)
}

// FormatTime renders a timestamp's local calendar day the same way.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return formatDay(t.Local())
}

func formatDay(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 (%s)", t.Year(), int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// MonthTitle renders e.g. "2024년 3월".
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%d년 %d월", year, int(month))
}

// Truncate cuts text to n runes and appends "..." when anything was cut.
func Truncate(text string, n int) string {
	r := []rune(text)
	if n < 0 || len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}

// Preview collapses line breaks before truncating so previews stay on one line.
func Preview(text string, n int) string {
	return Truncate(strings.Join(strings.Fields(text), " "), n)
}
