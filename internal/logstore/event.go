package logstore

import (
	"fmt"
	"strings"
	"time"
)

// truncationMark is appended when recognized text is cut at the length cap.
const truncationMark = "...[truncated]"

// Event is one capture observation: what was on screen during one cycle.
// App and WindowTitle are optional; a lookup failure leaves them absent
// rather than aborting the capture.
type Event struct {
	Timestamp   LocalTime `json:"timestamp"`
	App         string    `json:"app,omitempty"`
	WindowTitle string    `json:"window_title,omitempty"`
	Display     int       `json:"display"`
	Text        string    `json:"text"`
}

// LocalTime marshals as ISO-8601 in the host's local zone at second
// precision, matching the on-disk partition format.
type LocalTime struct {
	time.Time
}

// Local wraps a time.Time, truncating to second precision.
func Local(t time.Time) LocalTime {
	return LocalTime{t.In(time.Local).Truncate(time.Second)}
}

const timeLayout = "2006-01-02T15:04:05"

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.In(time.Local).Format(timeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	// Accept bare local timestamps as well as zoned/fractional variants
	// written by older captures.
	for _, layout := range []string{timeLayout, "2006-01-02T15:04:05.999999", time.RFC3339} {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed.Truncate(time.Second)
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", s)
}

// Truncate caps recognized text at max characters. The truncation mark
// counts toward the cap, so the stored value never exceeds max.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := max - len(truncationMark)
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + truncationMark
}
