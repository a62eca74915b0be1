package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eslsoft/lingualatina/internal/infrastructure/database/types"
	"github.com/eslsoft/lingualatina/internal/repository"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS storage_slots (
	slot_key   TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLStore keeps slots in a SQLite table through database/sql.
type SQLStore struct {
	db *sql.DB
}

var _ repository.SlotStore = (*SQLStore)(nil)

// NewSQLStore ensures the slot table exists.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create storage_slots table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc types.Document
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage_slots WHERE slot_key = ?`, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSlotNotFound
		}
		return nil, fmt.Errorf("select slot %q: %w", key, err)
	}
	return doc, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO storage_slots (slot_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, types.Document(value), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert slot %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM storage_slots WHERE slot_key = ?`, key); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
