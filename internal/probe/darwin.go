package probe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Darwin probes macOS through osascript, ioreg, and screencapture. It is the
// single concrete implementation; everything else talks to the interfaces.
type Darwin struct{}

const windowScript = `
use framework "AppKit"
use scripting additions

set frontApp to (info for (path to frontmost application))
set appName to short name of frontApp

set windowTitle to ""
try
	tell application "System Events"
		tell (first process whose frontmost is true)
			set windowTitle to name of front window
		end tell
	end tell
end try

return appName & linefeed & windowTitle
`

const displayScript = `
use framework "AppKit"
use scripting additions

set windowX to 0
try
	tell application "System Events"
		tell (first process whose frontmost is true)
			set windowPos to position of front window
			set windowX to item 1 of windowPos
		end tell
	end tell
end try

set screenList to current application's NSScreen's screens()
set displayNum to 1
repeat with i from 1 to (count of screenList)
	set scr to item i of screenList
	set scrFrame to scr's frame()
	set scrX to (current application's NSMinX(scrFrame)) as integer
	set scrWidth to (current application's NSWidth(scrFrame)) as integer
	if windowX >= scrX and windowX < (scrX + scrWidth) then
		set displayNum to i
		exit repeat
	end if
end repeat

return displayNum
`

const lockScript = `
use framework "Quartz"
set sessionInfo to current application's CGSessionCopyCurrentDictionary()
if sessionInfo is missing value then return "unknown"
set info to sessionInfo as record
try
	if CGSSessionScreenIsLocked of info then return "locked"
end try
return "unlocked"
`

// Window returns the foreground app and window title, plus the display the
// window sits on. A failed title lookup yields an empty title, not an error;
// only a failed app lookup is ErrUnavailable.
func (Darwin) Window(ctx context.Context) (WindowState, error) {
	out, err := osascript(ctx, windowScript)
	if err != nil {
		return WindowState{}, fmt.Errorf("%w: window lookup: %v", ErrUnavailable, err)
	}

	app, title := ParseWindowOutput(out)
	if app == "" {
		return WindowState{}, fmt.Errorf("%w: empty window output", ErrUnavailable)
	}

	return WindowState{App: app, Title: title, Display: activeDisplay(ctx)}, nil
}

// System returns idle duration (from IOHIDSystem) and lock state. Either
// half failing degrades to the safe value (zero idle, unlocked) so a probe
// hiccup never suppresses a capture by itself.
func (Darwin) System(ctx context.Context) (SystemState, error) {
	var state SystemState

	if out, err := exec.CommandContext(ctx, "ioreg", "-c", "IOHIDSystem").Output(); err == nil {
		state.Idle = ParseIdleOutput(string(out))
	}

	if out, err := osascript(ctx, lockScript); err == nil {
		state.Locked = ParseLockOutput(out)
	}

	return state, nil
}

// Capture shoots the given display to path with screencapture -x (no sound).
func (Darwin) Capture(ctx context.Context, display int, path string) error {
	cmd := exec.CommandContext(ctx, "screencapture", "-x", "-D", strconv.Itoa(display), path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("screencapture: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("screencapture produced no file: %w", err)
	}
	return nil
}

func activeDisplay(ctx context.Context) int {
	out, err := osascript(ctx, displayScript)
	if err != nil {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func osascript(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ParseWindowOutput splits the two-line osascript output into app name and
// window title. Everything after the first newline is title: titles may
// themselves contain newlines.
func ParseWindowOutput(out string) (app, title string) {
	out = strings.TrimRight(out, "\n")
	parts := strings.SplitN(out, "\n", 2)
	app = parts[0]
	if len(parts) > 1 {
		title = parts[1]
	}
	return app, title
}

// ParseIdleOutput extracts HIDIdleTime (nanoseconds) from ioreg output.
// Returns zero when the field is missing or malformed.
func ParseIdleOutput(out string) time.Duration {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "\"HIDIdleTime\"") {
			continue
		}
		idx := strings.LastIndex(line, "=")
		if idx < 0 {
			continue
		}
		ns, err := strconv.ParseInt(strings.TrimSpace(line[idx+1:]), 10, 64)
		if err != nil {
			continue
		}
		return time.Duration(ns)
	}
	return 0
}

// ParseLockOutput reports whether the lock probe printed exactly "locked".
// "unlocked", "unknown", and empty output all mean not locked.
func ParseLockOutput(out string) bool {
	return strings.TrimSpace(out) == "locked"
}
