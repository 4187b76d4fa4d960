// Package sqlite persists sheet blobs in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/pipsheet/internal/sheet/storage"
	"github.com/louisbranch/pipsheet/internal/sheet/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed blob persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var (
	_ storage.BlobStore   = (*Store)(nil)
	_ storage.Timestamped = (*Store)(nil)
)

// Open opens a sheet SQLite store and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageUnavailable, "open sqlite db", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.CodeStorageUnavailable, "ping sqlite db", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := s.prepare(ctx, key)
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = s.sqlDB.QueryRowContext(ctx, `SELECT value FROM sheet_blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeStorageRead, "get blob", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

// Put overwrites the blob stored under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	key, err := s.prepare(ctx, key)
	if err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO sheet_blobs (
	key,
	value,
	updated_at
) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
	value = excluded.value,
	updated_at = excluded.updated_at
`,
		key,
		value,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorageWrite, "put blob", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	key, err := s.prepare(ctx, key)
	if err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sheet_blobs WHERE key = ?`, key); err != nil {
		return apperrors.Wrap(apperrors.CodeStorageWrite, "delete blob", err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	key, err := s.prepare(ctx, key)
	if err != nil {
		return time.Time{}, false, err
	}
	var millis int64
	err = s.sqlDB.QueryRowContext(ctx, `SELECT updated_at FROM sheet_blobs WHERE key = ?`, key).Scan(&millis)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, apperrors.Wrap(apperrors.CodeStorageRead, "get blob timestamp", err)
	}
	return time.UnixMilli(millis).UTC(), true, nil
}

func (s *Store) prepare(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", apperrors.New(apperrors.CodeStorageUnavailable, "storage is not configured")
	}
	key, err := storage.NormalizeKey(key)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeStorageKeyEmpty, "normalize key", err)
	}
	return key, nil
}
