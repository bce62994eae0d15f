// Package session rebuilds contiguous work sessions from a day's (or week's)
// raw event sequence. Sessions are derived at report time and never
// persisted on their own.
package session

import (
	"time"

	"github.com/mtanaka/worklog/internal/logstore"
)

const (
	maxTitles     = 10  // representative titles kept per session
	maxExcerpts   = 8   // text excerpts kept per session
	maxExcerptLen = 300 // characters per kept excerpt
)

// Session is a contiguous span of time attributed to one app.
type Session struct {
	App      string
	Titles   []string // representative window titles, first-seen order
	Start    time.Time
	End      time.Time
	Events   int
	Excerpts []string // bounded OCR text evidence for summarization
}

// Duration is the wall-clock span of the session.
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Date returns the session's calendar date (from its start).
func (s Session) Date() string {
	return s.Start.Format("2006-01-02")
}

// Segment scans events in timestamp order and groups them into sessions.
// An event extends the open session when its app matches and the gap since
// the previous event is at most interval*(missedCycles+1): the configured
// number of skipped captures is tolerated before the gap counts as a break.
// Title changes within the same app never break a session.
func Segment(events []logstore.Event, interval time.Duration, missedCycles int) []Session {
	if len(events) == 0 {
		return nil
	}

	maxGap := interval * time.Duration(missedCycles+1)

	var sessions []Session
	var open *Session
	var prev time.Time

	for _, e := range events {
		ts := e.Timestamp.Time

		if open != nil && e.App == open.App && ts.Sub(prev) <= maxGap {
			extend(open, e, ts)
		} else {
			if open != nil {
				sessions = append(sessions, *open)
			}
			open = &Session{App: e.App, Start: ts}
			extend(open, e, ts)
		}
		prev = ts
	}

	sessions = append(sessions, *open)
	return sessions
}

func extend(s *Session, e logstore.Event, ts time.Time) {
	s.End = ts
	s.Events++

	if e.WindowTitle != "" && len(s.Titles) < maxTitles && !contains(s.Titles, e.WindowTitle) {
		s.Titles = append(s.Titles, e.WindowTitle)
	}

	if e.Text != "" && len(s.Excerpts) < maxExcerpts {
		s.Excerpts = append(s.Excerpts, clip(e.Text, maxExcerptLen))
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clip(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
