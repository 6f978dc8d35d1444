package deps

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/cratewalk/cratewalk/pkg/depgraph"
	"github.com/cratewalk/cratewalk/pkg/errors"
	"github.com/cratewalk/cratewalk/pkg/registry"
)

const workers = 8

// Resolver builds a dependency graph starting from a root crate.
type Resolver interface {
	// Resolve fetches the crate and its transitive dependencies,
	// returning a graph with a node for each crate and an edge per
	// direct dependency.
	Resolve(ctx context.Context, crate string, opts Options) (*depgraph.Graph, error)
	// Name returns the resolver's identifier (e.g., "crates.io").
	Name() string
}

// Registry implements Resolver by wrapping a Fetcher with concurrent crawling.
type Registry struct {
	name    string
	fetcher Fetcher
}

// NewRegistry creates a Resolver that crawls dependencies using the given Fetcher.
func NewRegistry(name string, fetcher Fetcher) *Registry {
	return &Registry{name: name, fetcher: fetcher}
}

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// WithRoot returns a Resolver that serves root from already-known metadata
// (e.g., a local Cargo.toml) and delegates every other crate to r's fetcher.
func (r *Registry) WithRoot(root *Package) *Registry {
	return &Registry{
		name:    r.name,
		fetcher: &pinnedRoot{root: root, next: r.fetcher},
	}
}

type pinnedRoot struct {
	root *Package
	next Fetcher
}

func (p *pinnedRoot) Fetch(ctx context.Context, name string, refresh bool) (*Package, error) {
	if name == p.root.Name {
		pkg := *p.root
		return &pkg, nil
	}
	return p.next.Fetch(ctx, name, refresh)
}

// Resolve crawls dependencies starting from crate, respecting Options limits.
// Fetches run concurrently; the graph itself is only mutated from the
// collect loop, so the returned graph needs no locking.
func (r *Registry) Resolve(ctx context.Context, crate string, opts Options) (*depgraph.Graph, error) {
	ctx, cancel := context.WithCancel(ctx)
	c := &crawler{
		ctx:     ctx,
		cancel:  cancel,
		opts:    opts.WithDefaults(),
		fetch:   r.fetcher.Fetch,
		g:       depgraph.New(),
		visited: make(map[string]bool),
		jobs:    make(chan job, workers*2),
		results: make(chan result, workers*2),
	}
	return c.run(crate)
}

type crawler struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	fetch  func(context.Context, string, bool) (*Package, error)

	g *depgraph.Graph

	jobs    chan job
	results chan result
	wg      sync.WaitGroup
	senders sync.WaitGroup

	mu      sync.Mutex
	visited map[string]bool
	pending int64
}

type job struct {
	name  string
	depth int
}

type result struct {
	job
	pkg *Package
	err error
}

// run starts the workers, seeds the root job, and tears the pool down once
// collect returns. Cancelling before closing jobs unblocks any enqueue
// goroutines still waiting on a full channel, so jobs is never closed with
// a sender in flight.
func (c *crawler) run(root string) (*depgraph.Graph, error) {
	defer func() {
		c.cancel()
		c.senders.Wait()
		close(c.jobs)
		c.wg.Wait()
	}()

	for range workers {
		c.wg.Add(1)
		go c.worker()
	}

	c.enqueue(job{name: root})
	if err := c.collect(root); err != nil {
		return nil, err
	}
	return c.g, nil
}

func (c *crawler) worker() {
	defer c.wg.Done()
	for j := range c.jobs {
		if c.ctx.Err() != nil {
			atomic.AddInt64(&c.pending, -1)
			continue
		}
		pkg, err := c.fetch(c.ctx, j.name, c.opts.Refresh)
		select {
		case c.results <- result{job: j, pkg: pkg, err: err}:
		case <-c.ctx.Done():
			atomic.AddInt64(&c.pending, -1)
		}
	}
}

func (c *crawler) enqueue(j job) bool {
	c.mu.Lock()
	if c.visited[j.name] {
		c.mu.Unlock()
		return false
	}
	c.visited[j.name] = true
	c.mu.Unlock()

	atomic.AddInt64(&c.pending, 1)

	c.senders.Add(1)
	go func() {
		defer c.senders.Done()
		select {
		case c.jobs <- j:
		case <-c.ctx.Done():
		}
	}()
	return true
}

func (c *crawler) collect(root string) error {
	for {
		select {
		case r := <-c.results:
			if err := c.handle(r, root); err != nil {
				return err
			}
			if atomic.AddInt64(&c.pending, -1) == 0 {
				return nil
			}
		case <-c.ctx.Done():
			return c.ctx.Err()
		}
	}
}

func (c *crawler) handle(r result, root string) error {
	if r.err != nil {
		if r.name == root {
			if stderrors.Is(r.err, registry.ErrNotFound) {
				return errors.Wrap(errors.ErrCodeCrateNotFound, r.err, "resolve %s", root)
			}
			return errors.Wrap(errors.ErrCodeNetwork, r.err, "resolve %s", root)
		}
		// Degrade to a leaf: unknown is treated as "no dependencies".
		c.opts.Logger("fetch failed: %s: %v", r.name, r.err)
		c.g.EnsureNode(r.name)
		return nil
	}

	c.g.EnsureNode(r.name)
	if c.opts.OnFetch != nil {
		c.opts.OnFetch(r.name)
	}

	c.enqueueDeps(r)
	return nil
}

func (c *crawler) enqueueDeps(r result) {
	if r.depth >= c.opts.MaxDepth || len(r.pkg.Dependencies) == 0 {
		return
	}

	next := r.depth + 1

	for _, dep := range r.pkg.Dependencies {
		c.g.AddEdge(r.name, dep)

		if c.g.NodeCount() < c.opts.MaxNodes {
			c.enqueue(job{name: dep, depth: next})
		}
	}
}
