package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteTimeout = 2 * time.Second

// SQLiteStore keeps preferences in a SQLite table keyed by (origin, key).
type SQLiteStore struct {
	db     *sql.DB
	origin string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path, origin string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), sqliteTimeout)
	defer cancel()
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS preferences(
		origin TEXT NOT NULL,
		k TEXT NOT NULL,
		v TEXT NOT NULL,
		PRIMARY KEY(origin, k)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate prefs db: %w", err)
	}
	return &SQLiteStore{db: db, origin: origin}, nil
}

// Get implements KV.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sqliteTimeout)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM preferences WHERE origin = ? AND k = ?`, s.origin, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements KV.
func (s *SQLiteStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), sqliteTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences(origin, k, v) VALUES(?, ?, ?)
		ON CONFLICT(origin, k) DO UPDATE SET v = excluded.v`, s.origin, key, value)
	if err != nil {
		return fmt.Errorf("write preference %q: %w", key, err)
	}
	return nil
}

// Close implements KV.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
