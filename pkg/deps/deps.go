// Package deps resolves crate dependency graphs from package registries.
//
// A [Fetcher] retrieves one crate's metadata; a [Registry] wraps a Fetcher
// with a concurrent crawler that walks the dependency closure outward from
// a root crate and materializes it as a [depgraph.Graph]. Per-crate fetch
// failures degrade that crate to a leaf; only a failure to fetch the root
// itself aborts resolution.
package deps

import (
	"context"
	"time"
)

const (
	DefaultMaxDepth = 3              // Default maximum dependency depth
	DefaultMaxNodes = 5000           // Default maximum crates to fetch
	DefaultCacheTTL = 24 * time.Hour // Default registry cache duration
)

// Options configures dependency resolution behavior.
type Options struct {
	MaxDepth int                  // Maximum depth to crawl (default: 3)
	MaxNodes int                  // Maximum crates to fetch (default: 5000)
	Refresh  bool                 // Bypass cache for fresh data
	Logger   func(string, ...any) // Progress/error callback (optional)
	OnFetch  func(name string)    // Called once per successfully fetched crate (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Fetcher retrieves crate metadata from a registry.
type Fetcher interface {
	// Fetch retrieves crate information by name. If refresh is true,
	// cached data is bypassed.
	Fetch(ctx context.Context, name string, refresh bool) (*Package, error)
}

// Package holds metadata fetched from a package registry.
type Package struct {
	Name         string   // Crate name
	Version      string   // Latest or specified version
	Dependencies []string // Direct "normal" dependency names
}
