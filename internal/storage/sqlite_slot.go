package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteSlot stores the snapshot as one row of the kv_slots table.
type SQLiteSlot struct {
	db  *sql.DB
	key string
	now func() time.Time
}

func NewSQLiteSlot(db *sql.DB, key string) (*SQLiteSlot, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("storage: empty slot key")
	}
	return &SQLiteSlot{db: db, key: key, now: time.Now}, nil
}

// OpenSQLite opens the database at path, applies migrations and binds the
// slot to key.
func OpenSQLite(path, key string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	slot, err := NewSQLiteSlot(db, key)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return slot, nil
}

func (s *SQLiteSlot) Key() string {
	return s.key
}

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = ?`, s.key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slot %s: %w", s.key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteSlot) Write(ctx context.Context, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(value), s.now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.key, err)
	}
	return nil
}

// UpdatedAt reports when the slot was last written.
func (s *SQLiteSlot) UpdatedAt(ctx context.Context) (time.Time, error) {
	row := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv_slots WHERE key = ?`, s.key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return time.Parse(sqliteTimeLayout, raw)
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
