// Package history keeps a local ledger of seeding runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultPath = "data/kbseed.db"

// Run is one recorded seeding run.
type Run struct {
	ID         int64
	Dataset    string
	Collection string
	Count      int
	Status     string
	Warning    string
	Duration   time.Duration
	At         time.Time
}

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the ledger database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun appends one run to the ledger.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.At.IsZero() {
		run.At = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (dataset, collection, doc_count, status, warning, duration_ms, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?);`,
		run.Dataset, run.Collection, run.Count, run.Status, run.Warning,
		run.Duration.Milliseconds(), run.At.Format(time.RFC3339Nano),
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dataset, collection, doc_count, status, warning, duration_ms, at
		 FROM runs ORDER BY id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run        Run
			durationMS int64
			at         string
		)
		if err := rows.Scan(&run.ID, &run.Dataset, &run.Collection, &run.Count,
			&run.Status, &run.Warning, &durationMS, &at); err != nil {
			return nil, err
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if parsed, err := time.Parse(time.RFC3339Nano, at); err == nil {
			run.At = parsed
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dataset TEXT NOT NULL,
	collection TEXT NOT NULL,
	doc_count INTEGER NOT NULL,
	status TEXT NOT NULL,
	warning TEXT,
	duration_ms INTEGER NOT NULL,
	at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_collection ON runs(collection);
`
