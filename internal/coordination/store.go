// Package coordination wraps the shared TTL key-value store that
// independent service instances use to coordinate: response caching,
// rate-limit counters, webhook dedup markers, and the shared credential.
// Absence of a key always means "not yet seen" or "expired".
package coordination

import (
	"context"
	"time"
)

// Store is the coordination contract. Every operation is atomic at the
// store level; callers never do a local read-modify-write on shared
// state. All operations are fallible and context-bounded.
type Store interface {
	// Get returns the value and whether the key exists. A missing key is
	// (_, false, nil), not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// SetEx writes the value with the given TTL, replacing any previous
	// value.
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error

	// SetNX writes the value with the given TTL only if the key is
	// absent. Returns true when this caller won the write.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// IncrWindow atomically increments the counter at key and returns
	// the post-increment value. The TTL is attached only when the
	// increment created the key, so the window never slides.
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)

	Close() error
}
