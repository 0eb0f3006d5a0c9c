package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"people-directory/domain/repositories"
)

// KVStore is a single-table key-value store in a local SQLite file.
type KVStore struct {
	db   *sql.DB
	path string
}

var _ repositories.KeyValueStore = (*KVStore)(nil)

// NewKVStore opens (creating if needed) the database at path.
func NewKVStore(path string) (*KVStore, error) {
	if path == "" {
		path = "directory.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps ":memory:" databases shared and writes serialized
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv_entries table: %w", err)
	}
	return &KVStore{db: db, path: path}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value)
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *KVStore) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *KVStore) Path() string {
	return s.path
}
