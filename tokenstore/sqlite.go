package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS kv_store (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

const (
	selectValueSQL = `SELECT value FROM kv_store WHERE key = ?`
	upsertValueSQL = `INSERT INTO kv_store (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deleteValueSQL = `DELETE FROM kv_store WHERE key = ?`
)

// SQLite is a Store persisted in a single SQLite table.
type SQLite struct {
	db     *sqlx.DB
	closed atomic.Bool
}

// OpenSQLite opens (or creates) the database at path and ensures the kv_store
// table exists. The parent directory is created when missing.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create token store dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping token store: %w", err)
	}
	s, err := NewSQLite(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an existing connection. The store takes ownership of db.
func NewSQLite(ctx context.Context, db *sqlx.DB) (*SQLite, error) {
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("create kv_store: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}
	var value string
	err := s.db.GetContext(ctx, &value, selectValueSQL, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, upsertValueSQL, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, deleteValueSQL, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database. Safe to call multiple times.
func (s *SQLite) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}
