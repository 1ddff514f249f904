// Package store persists scan reports and their extracted symbols in a
// SQLite database under the project's .codeatlas directory.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultLocation is the database path relative to the project root,
// used when the config does not override storage.location.
const DefaultLocation = ".codeatlas/atlas.db"

// ErrNotFound is returned when a requested report does not exist.
var ErrNotFound = errors.New("report not found")

// Store wraps the SQLite connection and owns the report schema.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at dbPath and ensures
// the schema exists. The parent directory is created on demand.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the raw connection for schema inspection in tests.
func (s *Store) DB() *sql.DB {
	return s.db
}
