// Package localstore persists the small client-local state that outlives a
// session: the auth token and the recent-search list. Each value lives under
// a fixed key in a single SQLite table.
package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed storage keys.
const (
	keyAuthToken     = "auth_token"
	keySearchHistory = "search_history"
)

// Store is a SQLite-backed key/value store implementing domain.TokenStore
// and domain.HistoryStore.
type Store struct {
	db *sql.DB

	getStmt *sql.Stmt
	setStmt *sql.Stmt
	delStmt *sql.Stmt
}

// Open opens (creating if needed) the database at path, runs migrations and
// returns a ready store. Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New creates a Store from an already-opened database, running migrations
// and preparing statements.
func New(db *sql.DB) (*Store, error) {
	if err := NewMigrationRunner(db).Run(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	s := &Store{db: db}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *Store) prepareStatements() error {
	var err error

	s.getStmt, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}
	s.setStmt, err = s.db.Prepare(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}
	s.delStmt, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	return err
}

// Get returns the value under key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.getStmt.QueryRow(key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any prior value.
func (s *Store) Set(key, value string) error {
	_, err := s.setStmt.Exec(key, value)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.delStmt.Exec(key)
	return err
}

// Token returns the stored auth token, or empty when none is stored.
func (s *Store) Token() (string, error) {
	token, _, err := s.Get(keyAuthToken)
	return token, err
}

// SetToken stores the auth token.
func (s *Store) SetToken(token string) error {
	return s.Set(keyAuthToken, token)
}

// ClearToken removes the stored auth token.
func (s *Store) ClearToken() error {
	return s.Delete(keyAuthToken)
}

// History returns the persisted recent-search list, empty when absent or
// undecodable.
func (s *Store) History() ([]string, error) {
	raw, ok, err := s.Get(keySearchHistory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		// A corrupt value is discarded rather than wedging startup.
		return nil, nil
	}
	return entries, nil
}

// SaveHistory persists the recent-search list as a JSON array.
func (s *Store) SaveHistory(entries []string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.Set(keySearchHistory, string(data))
}

// Close releases prepared statements and the underlying database.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.getStmt, s.setStmt, s.delStmt} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	return s.db.Close()
}
