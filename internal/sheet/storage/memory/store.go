// Package memory provides a map-backed BlobStore for tests and throwaway
// sessions.
package memory

import (
	"context"
	"fmt"

	"github.com/louisbranch/pipsheet/internal/sheet/storage"
)

// Store keeps blobs in process memory. It is not safe for concurrent use;
// the engine loop is its only caller.
type Store struct {
	blobs  map[string][]byte
	closed bool

	// Writes counts successful Put calls.
	Writes int
}

var _ storage.BlobStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{blobs: map[string][]byte{}}
}

// Get returns a copy of the blob under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.check(ctx); err != nil {
		return nil, false, err
	}
	value, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Put stores a copy of value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	key, err := storage.NormalizeKey(key)
	if err != nil {
		return err
	}
	s.blobs[key] = append([]byte(nil), value...)
	s.Writes++
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	delete(s.blobs, key)
	return nil
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.closed = true
	return nil
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.blobs == nil {
		return fmt.Errorf("storage is not configured")
	}
	if s.closed {
		return fmt.Errorf("storage is closed")
	}
	return nil
}
