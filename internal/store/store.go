// Package store keeps per-session key statistics in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for per-session key statistics.
type Store struct {
	db *sql.DB
}

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			words INTEGER NOT NULL,
			source TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			wpm_raw REAL NOT NULL,
			wpm_adjusted REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_key_stats (
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			dwell_sum_ms INTEGER NOT NULL,
			dwell_count INTEGER NOT NULL,
			PRIMARY KEY (session_id, char)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at)`,
		`CREATE INDEX IF NOT EXISTS idx_session_key_stats_char ON session_key_stats(char)`,
	},
	{
		`CREATE INDEX IF NOT EXISTS idx_sessions_lang_ended_at ON sessions(lang, ended_at)`,
	},
}

// Open opens or creates the database at path and brings its schema up to
// date.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		if cerr := db.Close(); cerr != nil {
			_ = cerr
		}
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SchemaVersion reports how many migrations have been applied.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (s *Store) migrate(ctx context.Context) error {
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	for next := version; next < len(migrations); next++ {
		if err := s.apply(ctx, next); err != nil {
			return fmt.Errorf("failed to migrate database to version %d: %w", next+1, err)
		}
	}
	return nil
}

func (s *Store) apply(ctx context.Context, idx int) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollbackOnError(tx, &err)
	for _, stmt := range migrations[idx] {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	// PRAGMA does not take bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, idx+1)); err != nil {
		return err
	}
	return tx.Commit()
}

func rollbackOnError(tx *sql.Tx, err *error) {
	if *err == nil {
		return
	}
	if rerr := tx.Rollback(); rerr != nil {
		_ = rerr
	}
}
