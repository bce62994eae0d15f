package aggregate

import "fmt"

// FormatSeconds renders a duration for the report, rounding to whole
// minutes. Reports are written in Japanese, so 2h15m becomes 2時間15分.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := (seconds + 30) / 60
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%d分", m)
	}
	if m == 0 {
		return fmt.Sprintf("%d時間", h)
	}
	return fmt.Sprintf("%d時間%d分", h, m)
}
