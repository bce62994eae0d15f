package report

import (
	"fmt"
	"time"
)

// WeekNumber returns the ISO week identifier for t, e.g. "2026-W35".
func WeekNumber(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekDates returns the ISO dates of Monday through Friday for the week
// containing t. Weekly reports cover workdays only.
func WeekDates(t time.Time) []string {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	monday := t.AddDate(0, 0, -offset)

	dates := make([]string, 5)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}
