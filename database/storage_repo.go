package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/store"
)

// Schema mirrors the browser_storage migration; tests apply it to in-memory databases
const Schema = `
CREATE TABLE IF NOT EXISTS browser_storage (
    visitor_id  TEXT     NOT NULL,
    storage_key TEXT     NOT NULL,
    value       BLOB     NOT NULL,
    updated_at  DATETIME NOT NULL,
    PRIMARY KEY (visitor_id, storage_key)
);`

// StorageEntry is one row of browser_storage
type StorageEntry struct {
	VisitorID  string    `db:"visitor_id"`
	StorageKey string    `db:"storage_key"`
	Value      []byte    `db:"value"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// StorageRepo is the durable store.Backend: one row per (visitor, key)
type StorageRepo struct {
	db *sqlx.DB
}

// NewStorageRepo wraps an open connection
func NewStorageRepo(db *sqlx.DB) *StorageRepo {
	return &StorageRepo{db: db}
}

// Get returns the stored value or store.ErrNotFound
func (r *StorageRepo) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	var value []byte
	err := r.db.GetContext(ctx, &value,
		"SELECT value FROM browser_storage WHERE visitor_id = ? AND storage_key = ?", visitorID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", visitorID, key, err)
	}
	return value, nil
}

// Set inserts or replaces the value
func (r *StorageRepo) Set(ctx context.Context, visitorID, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO browser_storage (visitor_id, storage_key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(visitor_id, storage_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		visitorID, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", visitorID, key, err)
	}
	return nil
}

// Delete removes the value; deleting a missing key is not an error
func (r *StorageRepo) Delete(ctx context.Context, visitorID, key string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM browser_storage WHERE visitor_id = ? AND storage_key = ?", visitorID, key)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", visitorID, key, err)
	}
	return nil
}

// Entries lists everything stored for a visitor, oldest write first
func (r *StorageRepo) Entries(ctx context.Context, visitorID string) ([]StorageEntry, error) {
	var entries []StorageEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT visitor_id, storage_key, value, updated_at FROM browser_storage
		 WHERE visitor_id = ? ORDER BY updated_at, storage_key`, visitorID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", visitorID, err)
	}
	return entries, nil
}
