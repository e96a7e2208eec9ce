package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kwestendorf/scopeworker/internal/scope"
	"kwestendorf/scopeworker/logger"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS scopes (
	source     TEXT NOT NULL,
	key        TEXT NOT NULL,
	record     TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (unixepoch()),
	PRIMARY KEY (source, key)
);
`

// SQLiteStore persists per-source record mappings in a single SQLite
// database. Each source is an independent partition: writes replace one
// source's rows in a single transaction and never touch the others.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the production pragmas: WAL journal, busy timeout, normal sync.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.ForStore().Debug().Str("path", path).Msg("Opened scope store")
	return &SQLiteStore{db: db}, nil
}

// Read returns the persisted mapping for a source; empty if never written.
func (s *SQLiteStore) Read(ctx context.Context, source string) (map[string]scope.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, record FROM scopes WHERE source = ?`, source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	defer rows.Close()

	records := make(map[string]scope.Record)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", source, err)
		}
		var rec scope.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", source, key, err)
		}
		records[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return records, nil
}

// Write replaces the full mapping for one source in a single transaction.
// An empty mapping is a valid write (it clears the partition).
func (s *SQLiteStore) Write(ctx context.Context, source string, records map[string]scope.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write %s: begin: %w", source, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scopes WHERE source = ?`, source); err != nil {
		return fmt.Errorf("write %s: clear: %w", source, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scopes (source, key, record) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("write %s: prepare: %w", source, err)
	}
	defer stmt.Close()

	for key, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("write %s/%s: encode: %w", source, key, err)
		}
		if _, err := stmt.ExecContext(ctx, source, key, string(raw)); err != nil {
			return fmt.Errorf("write %s/%s: insert: %w", source, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write %s: commit: %w", source, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
