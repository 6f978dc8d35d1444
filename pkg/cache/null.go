package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses every read, so each registry
// request goes to the network. It backs the --no-cache flag and keeps
// tests free of cross-run state.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always reports a miss.
func (c *NullCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

// Delete is a no-op; there is nothing to remove.
func (c *NullCache) Delete(_ context.Context, _ string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
