// Package cache provides pluggable byte-level caching for registry
// responses. Backends share one interface so the CLI can swap between a
// local file cache, a Redis instance, or no caching at all.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found
	// and still fresh; expired or missing entries are a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
