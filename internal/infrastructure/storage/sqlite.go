package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLite store constants.
const (
	// dirPermissions is the permission mode for the database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the database file.
	filePermissions = 0600

	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000

	// connectionTimeout is the timeout for verifying database connectivity.
	connectionTimeout = 5 * time.Second
)

// schema creates the single regions table. One row per region; the write
// path is a transactional UPSERT, so a region is always observed either
// entirely old or entirely new.
const schema = `
CREATE TABLE IF NOT EXISTS regions (
    name       TEXT PRIMARY KEY,
    data       BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLite is the production Store, keeping each region as a row in a
// SQLite database file.
type SQLite struct {
	db   *sql.DB
	path string
}

// Config contains SQLite store configuration options.
// These map to the storage section of config.yaml.
type Config struct {
	// Path is the filesystem path to the SQLite database file.
	// The directory will be created if it doesn't exist.
	Path string

	// WALMode enables Write-Ahead Logging for better concurrent access.
	WALMode bool

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	BusyTimeout int
}

// Open creates the store, creating the database file and schema if needed.
//
// It performs the following setup:
//  1. Creates the database directory if it doesn't exist
//  2. Opens the database file with busy-timeout and optional WAL pragmas
//  3. Verifies the connection with a ping
//  4. Creates the regions table
//
// Returns the connected store, or an error if any step fails.
func Open(ctx context.Context, cfg Config) (*SQLite, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d", cfg.Path, cfg.BusyTimeout*msPerSecond)
	if cfg.WALMode {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening storage database: %w", err)
	}

	// SQLite only supports one writer; keep a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close() //nolint:errcheck // best effort cleanup on error path
		return nil, fmt.Errorf("verifying storage connection: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close() //nolint:errcheck // best effort cleanup on error path
		return nil, fmt.Errorf("creating regions table: %w", err)
	}

	// Owner read/write only; ignore error on first run before the file exists.
	_ = os.Chmod(cfg.Path, filePermissions)

	return &SQLite{db: db, path: cfg.Path}, nil
}

// Read returns the region's bytes, or ErrNoRegion.
func (s *SQLite) Read(ctx context.Context, region string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM regions WHERE name = ?`, region).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRegion
	}
	if err != nil {
		return nil, fmt.Errorf("reading region %q: %w", region, err)
	}
	return data, nil
}

// Write replaces the region's bytes atomically.
func (s *SQLite) Write(ctx context.Context, region string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO regions (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		region, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: region %q: %v", ErrWriteFailed, region, err)
	}
	return nil
}

// Erase removes the region.
func (s *SQLite) Erase(ctx context.Context, region string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM regions WHERE name = ?`, region); err != nil {
		return fmt.Errorf("erasing region %q: %w", region, err)
	}
	return nil
}

// Path returns the filesystem path to the database file.
func (s *SQLite) Path() string {
	return s.path
}

// HealthCheck verifies the database is accessible and functioning.
func (s *SQLite) HealthCheck(ctx context.Context) error {
	var result int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}

// Close closes the database connection gracefully.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing storage database: %w", err)
	}
	return nil
}
