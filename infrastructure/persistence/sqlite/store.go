// Package sqlite provides the local persistence backend. It keeps the same
// repository contracts as the hosted DynamoDB backend, so the rest of the
// application never knows which one it is talking to.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// timeLayout stores timestamps at full nanosecond resolution with fixed
// width, so lexicographic ordering in SQL matches chronological order.
// RFC3339Nano is unsuitable here: it trims trailing zeros.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store owns the SQLite connection shared by the local repositories.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and runs the schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer keeps things simple and avoids SQLITE_BUSY under load
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &Store{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init tables: %w", err)
	}

	return store, nil
}

// DB exposes the underlying connection for the repositories.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the connection is alive.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS ideas (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]', -- JSON array
			audio_url TEXT,
			status TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_user ON ideas(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			idea_id TEXT,
			user_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload TEXT NOT NULL, -- JSON
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_idea ON documents(idea_id, kind, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
