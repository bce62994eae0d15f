// Package aggregate computes per-app time totals from sessions. Durations
// are summed in integer seconds; rendering to hours/minutes happens only at
// display time so totals stay exact.
package aggregate

import (
	"sort"
	"strings"

	"github.com/mtanaka/worklog/internal/session"
)

// unknownApp labels sessions whose events had no app name.
const unknownApp = "Unknown"

// AppUsage holds one app's cumulative time over the period.
type AppUsage struct {
	App      string
	Seconds  int
	Sessions int
}

// DayUsage holds one calendar day's total recorded time.
type DayUsage struct {
	Date    string // YYYY-MM-DD
	Seconds int
	Events  int
}

// Usage sums session durations per app, sorted by time descending then name.
func Usage(sessions []session.Session) []AppUsage {
	byApp := make(map[string]*AppUsage)

	for _, s := range sessions {
		name := s.App
		if name == "" {
			name = unknownApp
		}
		u, ok := byApp[name]
		if !ok {
			u = &AppUsage{App: name}
			byApp[name] = u
		}
		u.Seconds += int(s.Duration().Seconds())
		u.Sessions++
	}

	usage := make([]AppUsage, 0, len(byApp))
	for _, u := range byApp {
		usage = append(usage, *u)
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Seconds != usage[j].Seconds {
			return usage[i].Seconds > usage[j].Seconds
		}
		return strings.ToLower(usage[i].App) < strings.ToLower(usage[j].App)
	})
	return usage
}

// ByDay sums session durations per calendar day, in date order. Used by the
// weekly report's daily breakdown.
func ByDay(sessions []session.Session) []DayUsage {
	byDate := make(map[string]*DayUsage)

	for _, s := range sessions {
		date := s.Date()
		d, ok := byDate[date]
		if !ok {
			d = &DayUsage{Date: date}
			byDate[date] = d
		}
		d.Seconds += int(s.Duration().Seconds())
		d.Events += s.Events
	}

	days := make([]DayUsage, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// TotalSeconds sums all session durations for the period.
func TotalSeconds(sessions []session.Session) int {
	total := 0
	for _, s := range sessions {
		total += int(s.Duration().Seconds())
	}
	return total
}
