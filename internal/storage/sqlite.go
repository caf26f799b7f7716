// Package storage provides the local persistence layer: the key-value store
// backing the session, plus bookmarks and recent-view history.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/datafoundry/bazaar/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the KeyValueStore, BookmarkStore, and ViewStore
// interfaces using a single local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the value for a key, and whether the key exists.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %q: %w", key, err)
	}

	return value, true, nil
}

// Set stores a value under a key, replacing any existing value.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}

	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}

	return nil
}

// AddBookmark records a bookmarked dataset ID. Bookmarking the same dataset
// twice is a no-op.
func (s *SQLiteStore) AddBookmark(ctx context.Context, datasetID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(datasetID, "datasetID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (dataset_id) VALUES (?)
		ON CONFLICT(dataset_id) DO NOTHING`, datasetID)
	if err != nil {
		return fmt.Errorf("failed to add bookmark for %q: %w", datasetID, err)
	}

	return nil
}

// RemoveBookmark drops a bookmark, if present.
func (s *SQLiteStore) RemoveBookmark(ctx context.Context, datasetID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(datasetID, "datasetID"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE dataset_id = ?`, datasetID); err != nil {
		return fmt.Errorf("failed to remove bookmark for %q: %w", datasetID, err)
	}

	return nil
}

// ListBookmarks returns all bookmarked dataset IDs in bookmark order.
func (s *SQLiteStore) ListBookmarks(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT dataset_id FROM bookmarks ORDER BY created_at, dataset_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}

	return ids, nil
}

// IsBookmarked reports whether the dataset ID is bookmarked.
func (s *SQLiteStore) IsBookmarked(ctx context.Context, datasetID string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(datasetID, "datasetID"); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM bookmarks WHERE dataset_id = ?`, datasetID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark for %q: %w", datasetID, err)
	}

	return true, nil
}

// RecordView upserts a dataset into the recent-view history with the given
// timestamp.
func (s *SQLiteStore) RecordView(ctx context.Context, datasetID string, at time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(datasetID, "datasetID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recent_views (dataset_id, viewed_at) VALUES (?, ?)
		ON CONFLICT(dataset_id) DO UPDATE SET viewed_at = excluded.viewed_at`,
		datasetID, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to record view for %q: %w", datasetID, err)
	}

	return nil
}

// RecentViews returns the most recently viewed dataset IDs, newest first.
func (s *SQLiteStore) RecentViews(ctx context.Context, limit int) ([]model.RecentView, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT dataset_id, viewed_at FROM recent_views ORDER BY viewed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent views: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var views []model.RecentView
	for rows.Next() {
		var view model.RecentView
		if err := rows.Scan(&view.DatasetID, &view.ViewedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent view: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent views: %w", err)
	}

	return views, nil
}
