// Package store provides the local SQLite database for brag.
//
// The database holds four tables: entries (permanent accomplishment
// records), categories, config (key/value settings such as Jira
// credentials), and jira_tickets (the staging cache for issues fetched
// from the tracker but not yet promoted to entries).
//
// The database runs in embedded mode (no cgo) via ncruces/go-sqlite3
// with WAL for concurrent readers. Schema application is idempotent and
// happens on every open; there are no migrations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Sentinel errors shared by the query helpers. Callers are expected to
// match these with errors.Is and report them to the operator; none of
// them abort the process.
var (
	// ErrNotFound is returned when an id or key names no row.
	ErrNotFound = errors.New("not found")

	// ErrCategoryExists is returned when a category name is already taken.
	ErrCategoryExists = errors.New("category already exists")

	// ErrCategoryInUse is returned when deleting a category that entries
	// still reference.
	ErrCategoryInUse = errors.New("category is referenced by entries")

	// ErrAlreadyImported is returned when an entry with the same source id
	// already exists.
	ErrAlreadyImported = errors.New("ticket already imported")
)

// Store wraps the SQLite connection for the brag database.
type Store struct {
	conn *sql.DB
	path string
}

// DefaultPath returns the per-user database location,
// ~/.config/brag/brag.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "brag", "brag.db"), nil
}

// Open creates a new database connection at the specified path.
//
// The parent directory is created if needed. If the database file does
// not exist it is created; InitSchema must still be called to apply the
// schema. The caller MUST call Close when done.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{conn: conn, path: path}

	// WAL keeps readers unblocked during writes
	if _, err := s.conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := s.conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := s.conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection after checkpointing the WAL.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.conn = nil
	return nil
}

// InitSchema creates the database schema if it doesn't exist.
//
// This is idempotent - safe to call on every startup.
func (s *Store) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		category_id INTEGER REFERENCES categories(id),
		impact TEXT,
		details TEXT,
		source TEXT,
		source_id TEXT,
		source_url TEXT
	);

	CREATE TABLE IF NOT EXISTS config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	-- Staging cache for Jira issues pending import
	CREATE TABLE IF NOT EXISTS jira_tickets (
		ticket_key TEXT PRIMARY KEY,
		summary TEXT NOT NULL,
		resolved_at TEXT,
		url TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
	CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(category_id);
	CREATE INDEX IF NOT EXISTS idx_entries_source_id ON entries(source_id);
	CREATE INDEX IF NOT EXISTS idx_tickets_resolved ON jira_tickets(resolved_at);
	`

	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}
