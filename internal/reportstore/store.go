// Package reportstore persists rendered reports, one Markdown document per
// period, overwritten wholesale on regeneration.
package reportstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes report documents under a single directory.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the deterministic document path for a period, e.g.
// "2026-08-27" or "2026-W35".
func (s *Store) Path(period string) string {
	return filepath.Join(s.Dir, period+".md")
}

// Write persists a rendered report atomically: the document is staged in a
// temp file and renamed into place, so a crash mid-write never leaves a
// partial report and a previously good report is replaced all at once.
func (s *Store) Write(period, markdown string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	dest := s.Path(period)

	tmp, err := os.CreateTemp(s.Dir, "."+period+"-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}

	if _, err := tmp.WriteString(markdown); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp report: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("replace report: %w", err)
	}
	return dest, nil
}

// Read returns a previously written report document.
func (s *Store) Read(period string) (string, error) {
	data, err := os.ReadFile(s.Path(period))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
