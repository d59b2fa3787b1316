package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a single-file SQLite database
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at dbPath
func Open(dbPath string) (*SQLite, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	// busy_timeout lets two processes sharing the file wait for each other instead of failing
	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	s := &SQLite{db: sqlDB}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

const upsertEntry = `
	INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, upsertEntry, key, value, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// SetMany writes all entries in one transaction so user and token change together
func (s *SQLite) SetMany(ctx context.Context, entries map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	now := time.Now().Format(time.RFC3339)
	for k, v := range entries {
		if _, err := tx.ExecContext(ctx, upsertEntry, k, v, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to write %q: %w", k, err)
		}
	}
	return tx.Commit()
}

// Remove deletes all keys in one transaction so user and token disappear together
func (s *SQLite) Remove(ctx context.Context, keys ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, k); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to remove %q: %w", k, err)
		}
	}
	return tx.Commit()
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// migrate runs all storage migrations
func (s *SQLite) migrate() error {
	migrations := []string{
		migrationCreateLocalStorage,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateLocalStorage = `
CREATE TABLE IF NOT EXISTS local_storage (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`
