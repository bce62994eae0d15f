// Package ledger keeps a small sqlite record of generated reports and
// posted notifications. It replaces ad-hoc marker files: `worklog history`
// reads it, and the weekly poster uses it to post each week exactly once.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	period       TEXT PRIMARY KEY,
	path         TEXT NOT NULL,
	events       INTEGER NOT NULL,
	generated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS posts (
	period    TEXT PRIMARY KEY,
	posted_at TEXT NOT NULL
);
`

// ReportRecord is one generated report in the ledger.
type ReportRecord struct {
	Period      string `db:"period"`
	Path        string `db:"path"`
	Events      int    `db:"events"`
	GeneratedAt string `db:"generated_at"`
}

// Ledger wraps the state database.
type Ledger struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the ledger database under stateDir.
func Open(stateDir string) (*Ledger, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", filepath.Join(stateDir, "worklog.db"))
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// RecordReport upserts the record for a (re)generated report.
func (l *Ledger) RecordReport(period, path string, events int) error {
	_, err := l.db.Exec(`
		INSERT INTO reports (period, path, events, generated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(period) DO UPDATE SET
			path = excluded.path,
			events = excluded.events,
			generated_at = excluded.generated_at`,
		period, path, events, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}
	return nil
}

// Reports returns the most recently generated reports, newest first.
func (l *Ledger) Reports(limit int) ([]ReportRecord, error) {
	var records []ReportRecord
	err := l.db.Select(&records, `
		SELECT period, path, events, generated_at
		FROM reports
		ORDER BY generated_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return records, nil
}

// MarkPosted records that a period's report went out to the webhook.
func (l *Ledger) MarkPosted(period string) error {
	_, err := l.db.Exec(`
		INSERT INTO posts (period, posted_at) VALUES (?, ?)
		ON CONFLICT(period) DO NOTHING`,
		period, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark posted: %w", err)
	}
	return nil
}

// Posted reports whether a period was already posted.
func (l *Ledger) Posted(period string) (bool, error) {
	var exists bool
	err := l.db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM posts WHERE period = ?)", period)
	if err != nil {
		return false, fmt.Errorf("check posted: %w", err)
	}
	return exists, nil
}
