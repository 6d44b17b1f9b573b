// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records harvest outcomes in a local SQLite database,
// one row per subject and date.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded harvest outcome.
type Entry struct {
	Subject   string    `json:"subject"`
	Date      string    `json:"date"`
	Papers    int       `json:"papers"`
	Path      string    `json:"path,omitempty"`
	Status    string    `json:"status"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store manages the harvest history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at path, creating the
// schema if it does not exist.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS harvests (
			subject TEXT NOT NULL,
			date TEXT NOT NULL,
			papers INTEGER NOT NULL,
			path TEXT,
			status TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (subject, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_harvests_fetched_at ON harvests(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts one harvest outcome. Re-running for the same subject
// and date replaces the previous row.
func (s *Store) Record(ctx context.Context, e Entry) error {
	fetchedAt := e.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO harvests (subject, date, papers, path, status, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(subject, date) DO UPDATE SET
			papers=excluded.papers, path=excluded.path,
			status=excluded.status, fetched_at=excluded.fetched_at`,
		e.Subject, e.Date, e.Papers, e.Path, e.Status,
		fetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording harvest %s/%s: %w", e.Subject, e.Date, err)
	}
	return nil
}

// Recent returns the most recently fetched entries, newest first,
// optionally filtered by subject. A limit of 0 uses the default of 20.
func (s *Store) Recent(ctx context.Context, subject string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT subject, date, papers, path, status, fetched_at
		FROM harvests`
	args := []any{}
	if subject != "" {
		query += ` WHERE subject = ?`
		args = append(args, subject)
	}
	query += ` ORDER BY fetched_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt string
		if err := rows.Scan(&e.Subject, &e.Date, &e.Papers, &e.Path, &e.Status, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, fetchedAt); parseErr == nil {
			e.FetchedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
