// Package storage defines the key/value contract the sheet is persisted to.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultKey is the single key the sheet snapshot lives under.
const DefaultKey = "formData"

// BlobStore persists opaque values under string keys. Get reports a missing
// key as ok == false with a nil error.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Timestamped is implemented by stores that record when a key was last
// written.
type Timestamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

// Backend names a BlobStore implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bbolt"
	BackendMemory Backend = "memory"
)

// ParseBackend normalizes a backend label.
func ParseBackend(label string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(label))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendBolt, "bolt":
		return BackendBolt, nil
	case BackendMemory, "mem":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", label)
	}
}

// NormalizeKey trims key and rejects blanks.
func NormalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("storage key is required")
	}
	return key, nil
}
