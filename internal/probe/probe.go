// Package probe provides narrow interfaces over the OS capabilities the
// capture cycle needs: foreground window lookup, idle/lock state, and
// display capture. The capture pipeline depends only on these interfaces,
// so tests substitute deterministic fakes.
package probe

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable indicates a probe could not be read at all. Callers degrade
// the affected fields rather than aborting the capture.
var ErrUnavailable = errors.New("probe unavailable")

// WindowState describes the foreground window at capture time.
type WindowState struct {
	App     string
	Title   string
	Display int // 1-based index of the display holding the window
}

// SystemState describes user presence at capture time.
type SystemState struct {
	Idle   time.Duration
	Locked bool
}

// WindowProber yields the current foreground window.
type WindowProber interface {
	Window(ctx context.Context) (WindowState, error)
}

// SystemProber yields idle duration and screen-lock state.
type SystemProber interface {
	System(ctx context.Context) (SystemState, error)
}

// ScreenCapturer writes a raster image of one display to path.
type ScreenCapturer interface {
	Capture(ctx context.Context, display int, path string) error
}
