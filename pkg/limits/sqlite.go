package limits

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore persists usage counters in a SQLite database so quotas
// survive restarts. Suitable for single-instance deployments.
type SQLiteStore struct {
	db *sql.DB
}

const createCountersTable = `
CREATE TABLE IF NOT EXISTS usage_counters (
	client TEXT NOT NULL,
	tool   TEXT NOT NULL,
	day    TEXT NOT NULL,
	count  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (client, tool, day)
)`

// NewSQLiteStore opens (creating if necessary) the counter database at
// the given path. The parent directory is created when missing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create quota database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quota database: %w", err)
	}

	// SQLite allows a single writer. Capping the pool at one connection
	// also makes the per-connection pragmas below stick.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(createCountersTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize quota database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Increment adds one use and returns the new count.
func (s *SQLiteStore) Increment(ctx context.Context, client, tool, day string) (int, error) {
	const query = `
INSERT INTO usage_counters (client, tool, day, count) VALUES (?, ?, ?, 1)
ON CONFLICT (client, tool, day) DO UPDATE SET count = count + 1
RETURNING count`

	var count int
	if err := s.db.QueryRowContext(ctx, query, client, tool, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to increment usage counter: %w", err)
	}
	return count, nil
}

// Prune deletes counters for days other than keepDay.
func (s *SQLiteStore) Prune(ctx context.Context, keepDay string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM usage_counters WHERE day != ?`, keepDay); err != nil {
		return fmt.Errorf("failed to prune usage counters: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
