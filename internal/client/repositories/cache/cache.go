// Package cache stores the last successful response for a handful of list
// endpoints so views can still show something when the server is
// unreachable. Entries are JSON blobs keyed by a view-chosen name and
// stamped with their fetch time.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository is the offline read cache.
type Repository interface {
	// Put upserts a snapshot under key.
	Put(ctx context.Context, key string, value []byte, fetchedAt time.Time) error
	// Get returns the snapshot and its fetch time, or (nil, zero) when absent.
	Get(ctx context.Context, key string) ([]byte, time.Time, error)
	// Clear drops every snapshot; called on logout so one user's data
	// never shows for the next.
	Clear(ctx context.Context) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, key string, value []byte, fetchedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to cache[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, time.Time, error) {
	var value []byte
	var at time.Time
	err := r.db.QueryRowContext(ctx, `SELECT value, updated_at FROM cache WHERE key = ?`, key).Scan(&value, &at)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read cache[%s]: %w", key, err)
	}
	return value, at, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cache`)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
