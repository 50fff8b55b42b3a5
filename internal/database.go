package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const kvSchema = `
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteStore keeps settings in a single-table SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &StoreError{Backend: "sqlite", Op: "open", Err: fmt.Errorf("create db dir: %w", err)}
	}

	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StoreError{Backend: "sqlite", Op: "open", Err: err}
	}

	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, &StoreError{Backend: "sqlite", Op: "open", Err: fmt.Errorf("init schema: %w", err)}
	}

	return &SQLiteStore{db: db}, nil
}

// OpenDatabase opens a SQLite database in read-write mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", &StoreError{Backend: "sqlite", Op: "get", Key: key, Err: err}
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return &StoreError{Backend: "sqlite", Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return &StoreError{Backend: "sqlite", Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, &StoreError{Backend: "sqlite", Op: "keys", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &StoreError{Backend: "sqlite", Op: "keys", Err: fmt.Errorf("scan failed: %w", err)}
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, &StoreError{Backend: "sqlite", Op: "keys", Err: fmt.Errorf("rows iteration error: %w", err)}
	}
	return keys, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
