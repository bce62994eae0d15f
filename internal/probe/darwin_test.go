package probe

import (
	"testing"
	"time"
)

func TestParseWindowOutput(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		wantApp   string
		wantTitle string
	}{
		{"normal", "Safari\nGoogle - Search\n", "Safari", "Google - Search"},
		{"special chars", "Terminal\necho \"hello \\ world\"\n", "Terminal", "echo \"hello \\ world\""},
		{"title with newline", "Code\nfile.go - Project\nMore info\n", "Code", "file.go - Project\nMore info"},
		{"empty title", "Finder\n", "Finder", ""},
		{"empty output", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, title := ParseWindowOutput(tt.out)
			if app != tt.wantApp {
				t.Errorf("app = %q, want %q", app, tt.wantApp)
			}
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
		})
	}
}

func TestParseLockOutput(t *testing.T) {
	tests := []struct {
		out  string
		want bool
	}{
		{"locked\n", true},
		{"unlocked\n", false}, // contains "locked" but must not match
		{"unknown\n", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ParseLockOutput(tt.out); got != tt.want {
			t.Errorf("ParseLockOutput(%q) = %v, want %v", tt.out, got, tt.want)
		}
	}
}

func TestParseIdleOutput(t *testing.T) {
	out := `  | |   "HIDFKeyMode" = 0
  | |   "HIDIdleTime" = 123000000000
  | |   "HIDParameters" = {}`

	if got := ParseIdleOutput(out); got != 123*time.Second {
		t.Errorf("idle = %v, want 123s", got)
	}

	if got := ParseIdleOutput("no idle field here"); got != 0 {
		t.Errorf("missing field: idle = %v, want 0", got)
	}

	if got := ParseIdleOutput(`"HIDIdleTime" = garbage`); got != 0 {
		t.Errorf("malformed field: idle = %v, want 0", got)
	}
}
