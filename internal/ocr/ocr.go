// Package ocr wraps the external text-recognition binary behind a small
// interface: image path in, recognized text out.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrExtractionFailed indicates the OCR binary failed or produced no result.
// Callers degrade the event's text to empty and continue.
var ErrExtractionFailed = errors.New("text extraction failed")

// Extractor recognizes text in an image file.
type Extractor interface {
	Extract(ctx context.Context, imagePath string) (string, error)
}

// Command runs an external OCR binary. The contract: recognized text on
// stdout, diagnostics on stderr with a non-zero exit when the image cannot
// be processed.
type Command struct {
	Path      string
	Languages []string
	Timeout   time.Duration
}

// NewCommand builds a Command extractor with a 30s default timeout.
func NewCommand(path string, languages []string) *Command {
	return &Command{Path: path, Languages: languages, Timeout: 30 * time.Second}
}

// Extract invokes the OCR binary on imagePath and returns its stdout.
func (c *Command) Extract(ctx context.Context, imagePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	args := []string{}
	if len(c.Languages) > 0 {
		args = append(args, "--languages", strings.Join(c.Languages, ","))
	}
	args = append(args, imagePath)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s", ErrExtractionFailed, msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}
