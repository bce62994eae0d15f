// Package archive compresses rolled-over log partitions. Events keep their
// JSONL form inside zstd, and the log store reads archived partitions
// transparently.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Compress writes srcPath as srcPath+".zst" and removes the original.
// Returns the archive path.
func Compress(srcPath string) (string, error) {
	destPath := srcPath + ".zst"

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open partition: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	if err := os.Remove(srcPath); err != nil {
		return "", fmt.Errorf("remove original: %w", err)
	}

	return destPath, nil
}

// Sweep compresses every plain partition in logsDir whose date is more than
// retentionDays before today. Today's open partition is never touched.
// Returns the archive paths written.
func Sweep(logsDir string, retentionDays int, now time.Time) ([]string, error) {
	cutoff := now.AddDate(0, 0, -retentionDays).Format("2006-01-02")

	matches, err := filepath.Glob(filepath.Join(logsDir, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	var archived []string
	for _, path := range matches {
		date := strings.TrimSuffix(filepath.Base(path), ".jsonl")
		if date >= cutoff {
			continue
		}
		dest, err := Compress(path)
		if err != nil {
			return archived, fmt.Errorf("archive %s: %w", date, err)
		}
		archived = append(archived, dest)
	}
	return archived, nil
}
