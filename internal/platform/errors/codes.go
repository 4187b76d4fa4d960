// Package errors provides structured, code-tagged errors for sheet storage
// and snapshot handling.
package errors

import "strings"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Storage errors
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeStorageRead        Code = "STORAGE_READ"
	CodeStorageWrite       Code = "STORAGE_WRITE"
	CodeStorageKeyEmpty    Code = "STORAGE_KEY_EMPTY"

	// Snapshot errors
	CodeSnapshotMalformed Code = "SNAPSHOT_MALFORMED"
	CodeSnapshotEncode    Code = "SNAPSHOT_ENCODE"

	// Layout errors
	CodeLayoutInvalid Code = "LAYOUT_INVALID"

	// Field errors
	CodeFieldUnknown Code = "FIELD_UNKNOWN"
)

// Transient reports whether retrying the same operation later may succeed.
// Autosave uses it to decide between a quiet retry and a louder log line.
func (c Code) Transient() bool {
	switch c {
	case CodeStorageUnavailable, CodeStorageRead, CodeStorageWrite:
		return true
	default:
		return false
	}
}

// MessageKey is the catalog key of the user-facing text for c.
func (c Code) MessageKey() string {
	return "errors." + strings.ToLower(string(c))
}
