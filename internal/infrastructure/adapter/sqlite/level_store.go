// Package sqlite persists levels in a local SQLite file, so the last
// known-good level survives restarts of a single host.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	errs "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
)

const schema = `CREATE TABLE IF NOT EXISTS level_settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// LevelStore implements persistence.LevelStore on SQLite
type LevelStore struct {
	db           *sql.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// Open opens or creates the database at path. ":memory:" keeps it in memory.
func Open(ctx context.Context, path string, timeProvider coreport.TimeProvider, logger coreport.Logger) (*LevelStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: failed to create directory for %s: %s", errs.ErrPersistence, path, err.Error())
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %s", errs.ErrPersistence, path, err.Error())
	}
	// a single connection serializes writers and keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to create schema: %s", errs.ErrPersistence, err.Error())
	}

	logger.Debug("SQLite level store opened", map[string]any{"path": path})
	return &LevelStore{db: db, timeProvider: timeProvider, logger: logger}, nil
}

// Read returns the value stored under key
func (s *LevelStore) Read(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM level_settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read %s: %s", errs.ErrPersistence, key, err.Error())
	}
	return value, true, nil
}

// Write upserts value under key
func (s *LevelStore) Write(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO level_settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.timeProvider.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to write %s: %s", errs.ErrPersistence, key, err.Error())
	}
	return nil
}

// Close closes the database
func (s *LevelStore) Close() error {
	return s.db.Close()
}
