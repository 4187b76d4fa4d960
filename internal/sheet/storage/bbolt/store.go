// Package bbolt persists sheet blobs in a single BoltDB file.
package bbolt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/platform/timeouts"
	"github.com/louisbranch/pipsheet/internal/sheet/storage"
	"go.etcd.io/bbolt"
)

const sheetBucket = "sheet"

// Store provides a BoltDB-backed blob store.
type Store struct {
	db *bbolt.DB
}

var _ storage.BlobStore = (*Store)(nil)

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: timeouts.StoreOpen})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageUnavailable, "open storage db", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := s.prepare(ctx, key)
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetBucket))
		if bucket == nil {
			return fmt.Errorf("sheet bucket is missing")
		}
		if payload := bucket.Get([]byte(key)); payload != nil {
			// Bolt memory is only valid inside the transaction.
			value = append([]byte{}, payload...)
		}
		return nil
	})
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeStorageRead, "get blob", err)
	}
	return value, value != nil, nil
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
	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetBucket))
		if bucket == nil {
			return fmt.Errorf("sheet bucket is missing")
		}
		return bucket.Put([]byte(key), value)
	})
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
	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetBucket))
		if bucket == nil {
			return fmt.Errorf("sheet bucket is missing")
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorageWrite, "delete blob", err)
	}
	return nil
}

func (s *Store) prepare(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.db == nil {
		return "", apperrors.New(apperrors.CodeStorageUnavailable, "storage is not configured")
	}
	key, err := storage.NormalizeKey(key)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeStorageKeyEmpty, "normalize key", err)
	}
	return key, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(sheetBucket)); err != nil {
			return fmt.Errorf("create sheet bucket: %w", err)
		}
		return nil
	})
}
