// Package crates implements a client for the crates.io registry API.
package crates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cratewalk/cratewalk/pkg/cache"
	"github.com/cratewalk/cratewalk/pkg/registry"
)

// CrateInfo holds metadata for a Rust crate from crates.io.
//
// The Version field contains the max_version (latest stable or highest
// version). Dependencies include only "normal" (non-dev, non-optional)
// dependencies. A nil Dependencies slice means none are known - either the
// crate has no dependencies or the secondary dependency lookup failed.
type CrateInfo struct {
	Name         string   // Crate name (e.g., "serde", never empty in valid info)
	Version      string   // Latest version (e.g., "1.0.193", never empty in valid info)
	Dependencies []string // Normal dependency crate names (nil or empty if none)
}

// Client provides access to the crates.io package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
//
// Note: crates.io requires a User-Agent header; this client sets one automatically.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a crates.io client with the given cache backend.
// Use cache.NewNullCache() to disable caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"User-Agent": "cratewalk/1.0 (https://github.com/cratewalk/cratewalk)",
	}
	return &Client{
		Client:  registry.NewClient(backend, "crates:", cacheTTL, headers),
		baseURL: "https://crates.io/api/v1",
	}
}

// NewClientWithBaseURL creates a client against an alternate API endpoint.
// Used for private registry mirrors and tests.
func NewClientWithBaseURL(backend cache.Cache, cacheTTL time.Duration, baseURL string) *Client {
	c := NewClient(backend, cacheTTL)
	c.baseURL = baseURL
	return c
}

// FetchCrate retrieves metadata for a Rust crate from crates.io.
//
// The crate parameter is case-sensitive and must match the published crate
// name exactly. If refresh is true, the cache is bypassed.
//
// Dependency fetching failures are silently ignored; Dependencies will be
// empty/nil if the secondary API call fails. This is not considered an
// error - the crate simply renders as a leaf.
//
// Returns:
//   - CrateInfo populated with metadata on success
//   - [registry.ErrNotFound] if the crate doesn't exist
//   - [registry.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchCrate(ctx context.Context, crate string, refresh bool) (*CrateInfo, error) {
	key := crate

	var info CrateInfo
	err := c.Cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, crate, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, crate string, info *CrateInfo) error {
	var data crateResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s", c.baseURL, crate), &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	deps, _ := c.fetchDeps(ctx, crate, data.Crate.MaxVersion)

	*info = CrateInfo{
		Name:         data.Crate.Name,
		Version:      data.Crate.MaxVersion,
		Dependencies: deps,
	}
	return nil
}

func (c *Client) fetchDeps(ctx context.Context, crate, version string) ([]string, error) {
	url := fmt.Sprintf("%s/crates/%s/%s/dependencies", c.baseURL, crate, version)

	var data depsResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return nil, err
	}

	var deps []string
	for _, d := range data.Dependencies {
		if d.Kind == "normal" && !d.Optional {
			deps = append(deps, d.CrateID)
		}
	}
	return deps, nil
}

type crateResponse struct {
	Crate struct {
		Name       string `json:"name"`
		MaxVersion string `json:"max_version"`
	} `json:"crate"`
}

type depsResponse struct {
	Dependencies []struct {
		CrateID  string `json:"crate_id"`
		Kind     string `json:"kind"`
		Optional bool   `json:"optional"`
	} `json:"dependencies"`
}
