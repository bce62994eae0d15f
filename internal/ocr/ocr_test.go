package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake_ocr")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommand_Extract(t *testing.T) {
	script := writeScript(t, `echo "recognized text"`)

	c := NewCommand(script, []string{"ja", "en"})
	text, err := c.Extract(context.Background(), "/tmp/shot.png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "recognized text" {
		t.Errorf("text = %q", text)
	}
}

func TestCommand_PassesLanguagesAndPath(t *testing.T) {
	script := writeScript(t, `echo "$@"`)

	c := NewCommand(script, []string{"ja", "en"})
	text, err := c.Extract(context.Background(), "/tmp/shot.png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "--languages ja,en /tmp/shot.png" {
		t.Errorf("args = %q", text)
	}
}

func TestCommand_NonZeroExit(t *testing.T) {
	script := writeScript(t, `echo "cannot load image" >&2; exit 1`)

	c := NewCommand(script, nil)
	_, err := c.Extract(context.Background(), "/tmp/missing.png")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
	if !strings.Contains(err.Error(), "cannot load image") {
		t.Errorf("error should carry stderr diagnostic: %q", err)
	}
}
