package deps

import (
	"context"
	"time"

	"github.com/cratewalk/cratewalk/pkg/cache"
	"github.com/cratewalk/cratewalk/pkg/registry/crates"
)

// NewCratesResolver creates a Resolver backed by the crates.io API.
// A non-empty baseURL overrides the default endpoint (mirrors, tests).
func NewCratesResolver(backend cache.Cache, ttl time.Duration, baseURL string) *Registry {
	var client *crates.Client
	if baseURL != "" {
		client = crates.NewClientWithBaseURL(backend, ttl, baseURL)
	} else {
		client = crates.NewClient(backend, ttl)
	}
	return NewRegistry("crates.io", &cratesFetcher{client: client})
}

type cratesFetcher struct {
	client *crates.Client
}

func (f *cratesFetcher) Fetch(ctx context.Context, name string, refresh bool) (*Package, error) {
	info, err := f.client.FetchCrate(ctx, name, refresh)
	if err != nil {
		return nil, err
	}
	return &Package{
		Name:         info.Name,
		Version:      info.Version,
		Dependencies: info.Dependencies,
	}, nil
}
