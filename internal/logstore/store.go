package logstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrNoPartition is returned when no log data exists for a requested date.
var ErrNoPartition = errors.New("no log partition for date")

// Store is the append-only, date-partitioned event log. One JSONL file per
// calendar day; append-only during the day, read-only once rolled over.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// PartitionPath returns the partition file for an ISO date (YYYY-MM-DD).
func (s *Store) PartitionPath(date string) string {
	return filepath.Join(s.Dir, date+".jsonl")
}

// Append writes one event to its day's partition, creating the partition
// (and the logs directory) if needed. Append order equals capture order.
func (s *Store) Append(e Event) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	path := s.PartitionPath(e.Timestamp.Format("2006-01-02"))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open partition: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ReadDate loads all events for an ISO date, in append order. Archived
// (.jsonl.zst) partitions are read transparently. Returns ErrNoPartition
// when neither form exists.
func (s *Store) ReadDate(date string) ([]Event, error) {
	path := s.PartitionPath(date)
	if _, err := os.Stat(path); err == nil {
		return ReadFile(path)
	}
	if _, err := os.Stat(path + ".zst"); err == nil {
		return ReadFile(path + ".zst")
	}
	return nil, fmt.Errorf("%w: %s", ErrNoPartition, date)
}

// ReadFile parses one partition file. Blank and unparseable lines are
// skipped rather than failing the whole partition.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open partition: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	return parse(r)
}

func parse(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		events = append(events, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan partition: %w", err)
	}
	return events, nil
}
