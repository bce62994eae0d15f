// Package capture implements one capture cycle: probe user presence, skip
// when idle or locked, otherwise snapshot the foreground window and screen,
// extract text, and append one event to today's log partition.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mtanaka/worklog/internal/config"
	"github.com/mtanaka/worklog/internal/logstore"
	"github.com/mtanaka/worklog/internal/ocr"
	"github.com/mtanaka/worklog/internal/probe"
)

// ErrCaptureFailed indicates no display image could be obtained. It aborts
// the whole cycle; the next scheduled trigger retries a minute later.
var ErrCaptureFailed = errors.New("display capture failed")

// Runner holds one capture invocation's dependencies.
type Runner struct {
	Cfg       config.Config
	Window    probe.WindowProber
	System    probe.SystemProber
	Screen    probe.ScreenCapturer
	Extractor ocr.Extractor
	Store     *logstore.Store

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Result holds the outcome of one capture cycle.
type Result struct {
	Skipped bool
	Reason  string
	Event   *logstore.Event
}

// Run performs one capture cycle. An idle or locked system skips with no
// side effect. A single missing capability (window lookup, text extraction)
// degrades its field; only a failed screen capture or log append aborts.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	now := r.now()

	sys, err := r.System.System(ctx)
	if err != nil {
		// Treat an unreadable presence probe as active and unlocked:
		// better a spurious event than silently dropped minutes.
		log.Printf("warning: system probe failed: %v", err)
		sys = probe.SystemState{}
	}

	idleThreshold := time.Duration(r.Cfg.Capture.IdleThresholdSeconds) * time.Second
	if sys.Idle >= idleThreshold {
		return &Result{Skipped: true, Reason: fmt.Sprintf("idle for %s", sys.Idle.Truncate(time.Second))}, nil
	}
	if sys.Locked {
		return &Result{Skipped: true, Reason: "screen locked"}, nil
	}

	win, err := r.Window.Window(ctx)
	if err != nil {
		log.Printf("warning: window probe failed: %v", err)
		win = probe.WindowState{Display: 1}
	}
	if win.Display < 1 {
		win.Display = 1
	}

	if err := os.MkdirAll(r.Cfg.TmpDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	imagePath := filepath.Join(r.Cfg.TmpDir(), "screenshot_"+now.Format("20060102_150405")+".png")
	defer sweepScreenshots(r.Cfg.TmpDir())

	if err := r.Screen.Capture(ctx, win.Display, imagePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	text, err := r.Extractor.Extract(ctx, imagePath)
	if err != nil {
		log.Printf("warning: %v", err)
		text = ""
	}

	event := logstore.Event{
		Timestamp:   logstore.Local(now),
		App:         win.App,
		WindowTitle: win.Title,
		Display:     win.Display,
		Text:        logstore.Truncate(text, r.Cfg.Capture.MaxTextLength),
	}

	if err := r.Store.Append(event); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}

	return &Result{Event: &event}, nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// sweepScreenshots removes all transient screenshots, including leftovers
// from cycles that were abandoned mid-flight by the scheduler.
func sweepScreenshots(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "screenshot_*.png"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			log.Printf("warning: could not remove %s: %v", m, err)
		}
	}
}
