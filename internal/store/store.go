// Package store persists named collections as whole JSON documents in a
// local SQLite file. A collection is read and written in its entirety; there
// is no row-level access and no cross-collection transaction. This mirrors
// the single-user model of the application: one process, one writer.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

const (
	CollUsers   = "users"
	CollTickets = "tickets"
)

type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

func New(db *sql.DB, log zerolog.Logger) (*Store, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Get deserializes the named collection into dst. A missing collection
// leaves dst untouched; a corrupt document is logged and treated as missing
// rather than surfaced to the caller. Errors are storage errors only.
func (s *Store) Get(ctx context.Context, name string, dst any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn().Str("collection", name).Err(err).
			Msg("corrupt collection, using default")
		return nil
	}
	return nil
}

// Put serializes v and overwrites the named collection.
func (s *Store) Put(ctx context.Context, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		name, string(raw))
	if err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	return nil
}

func (s *Store) has(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM collections WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check collection %s: %w", name, err)
	}
	return n > 0, nil
}
