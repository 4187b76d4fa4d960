// Package timeouts defines the shared durations used by pipsheet hosts.
package timeouts

import "time"

// Autosave is the default period between unconditional sheet saves.
const Autosave = 5 * time.Second

// StoreOpen caps how long a key/value backend waits for its file lock.
const StoreOpen = time.Second

// Shutdown limits how long telemetry flushing may take on exit.
const Shutdown = 5 * time.Second
