package session

import (
	"strings"
	"testing"
	"time"

	"github.com/mtanaka/worklog/internal/logstore"
)

const interval = time.Minute

var base = time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)

// at builds an event `minutes` after base.
func at(minutes int, app, title, text string) logstore.Event {
	return logstore.Event{
		Timestamp:   logstore.Local(base.Add(time.Duration(minutes) * time.Minute)),
		App:         app,
		WindowTitle: title,
		Display:     1,
		Text:        text,
	}
}

func TestSegment_Empty(t *testing.T) {
	if got := Segment(nil, interval, 1); got != nil {
		t.Errorf("empty input: got %d sessions, want none", len(got))
	}
}

func TestSegment_ContinuousHour(t *testing.T) {
	var events []logstore.Event
	for i := 0; i <= 60; i++ {
		events = append(events, at(i, "Code", "main.go", ""))
	}

	sessions := Segment(events, interval, 1)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	s := sessions[0]
	if s.App != "Code" {
		t.Errorf("app = %q", s.App)
	}
	if s.Duration() != time.Hour {
		t.Errorf("duration = %v, want 1h", s.Duration())
	}
	if s.Events != 61 {
		t.Errorf("events = %d, want 61", s.Events)
	}
}

func TestSegment_AppChangeBreaks(t *testing.T) {
	events := []logstore.Event{
		at(0, "A", "", ""),
		at(1, "A", "", ""),
		at(2, "B", "", ""),
		at(3, "B", "", ""),
		at(4, "B", "", ""),
		at(5, "A", "", ""),
		at(6, "A", "", ""),
	}

	sessions := Segment(events, interval, 1)
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	if sessions[0].App != "A" || sessions[1].App != "B" || sessions[2].App != "A" {
		t.Errorf("apps = %s, %s, %s", sessions[0].App, sessions[1].App, sessions[2].App)
	}
	if sessions[0].Events != 2 || sessions[1].Events != 3 || sessions[2].Events != 2 {
		t.Errorf("event counts = %d, %d, %d", sessions[0].Events, sessions[1].Events, sessions[2].Events)
	}
}

func TestSegment_ToleratesOneMissedCycle(t *testing.T) {
	// Minutes 0, 1, 3: one skipped capture, still one session
	events := []logstore.Event{
		at(0, "Code", "", ""),
		at(1, "Code", "", ""),
		at(3, "Code", "", ""),
	}

	sessions := Segment(events, interval, 1)
	if len(sessions) != 1 {
		t.Fatalf("gap of one missed cycle: got %d sessions, want 1", len(sessions))
	}
	if sessions[0].Duration() != 3*time.Minute {
		t.Errorf("duration = %v", sessions[0].Duration())
	}
}

func TestSegment_LargerGapBreaks(t *testing.T) {
	// Minutes 0, 1, 5: a four-minute gap is a break
	events := []logstore.Event{
		at(0, "Code", "", ""),
		at(1, "Code", "", ""),
		at(5, "Code", "", ""),
	}

	sessions := Segment(events, interval, 1)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].Events != 2 || sessions[1].Events != 1 {
		t.Errorf("event counts = %d, %d", sessions[0].Events, sessions[1].Events)
	}
}

func TestSegment_TitleChangeDoesNotBreak(t *testing.T) {
	events := []logstore.Event{
		at(0, "Code", "main.go - worklog", ""),
		at(1, "Code", "store.go - worklog", ""),
		at(2, "Code", "main.go - worklog", ""),
	}

	sessions := Segment(events, interval, 1)
	if len(sessions) != 1 {
		t.Fatalf("title change broke the session: %d sessions", len(sessions))
	}
	if len(sessions[0].Titles) != 2 {
		t.Errorf("titles = %v, want 2 unique", sessions[0].Titles)
	}
	if sessions[0].Titles[0] != "main.go - worklog" {
		t.Errorf("first-seen order lost: %v", sessions[0].Titles)
	}
}

func TestSegment_EmptyTextStillSessions(t *testing.T) {
	events := []logstore.Event{
		at(0, "Safari", "docs", ""),
		at(1, "Safari", "docs", ""),
	}

	sessions := Segment(events, interval, 1)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions", len(sessions))
	}
	if len(sessions[0].Excerpts) != 0 {
		t.Errorf("excerpts = %v, want none for empty text", sessions[0].Excerpts)
	}
}

func TestSegment_ExcerptsBounded(t *testing.T) {
	long := strings.Repeat("画面テキスト", 200) // well over maxExcerptLen

	var events []logstore.Event
	for i := 0; i < 30; i++ {
		events = append(events, at(i, "Code", "", long))
	}

	sessions := Segment(events, interval, 1)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions", len(sessions))
	}

	s := sessions[0]
	if len(s.Excerpts) > maxExcerpts {
		t.Errorf("kept %d excerpts, cap is %d", len(s.Excerpts), maxExcerpts)
	}
	for i, e := range s.Excerpts {
		if n := len([]rune(e)); n > maxExcerptLen {
			t.Errorf("excerpt %d is %d runes, cap is %d", i, n, maxExcerptLen)
		}
	}
}

func TestSegment_ConfigurableTolerance(t *testing.T) {
	// With tolerance 2, a three-interval gap still extends
	events := []logstore.Event{
		at(0, "Code", "", ""),
		at(3, "Code", "", ""),
	}

	if got := Segment(events, interval, 2); len(got) != 1 {
		t.Errorf("tolerance 2: got %d sessions, want 1", len(got))
	}
	if got := Segment(events, interval, 1); len(got) != 2 {
		t.Errorf("tolerance 1: got %d sessions, want 2", len(got))
	}
}
