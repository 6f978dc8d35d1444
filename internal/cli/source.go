package cli

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cratewalk/cratewalk/pkg/depgraph"
	"github.com/cratewalk/cratewalk/pkg/deps"
	"github.com/cratewalk/cratewalk/pkg/edgelist"
	"github.com/cratewalk/cratewalk/pkg/errors"
	"github.com/cratewalk/cratewalk/pkg/manifest"
)

// sourceFlags holds the flags shared by the tree and order commands: where
// the graph comes from (registry, manifest, or edge-list file), how deep to
// crawl, and how results are cached and written.
type sourceFlags struct {
	maxDepth    int
	filter      string
	output      string
	manifest    string
	edgeList    string
	registryURL string
	refresh     bool
	noCache     bool
	redisURL    string
}

func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().IntVarP(&f.maxDepth, "max-depth", "d", deps.DefaultMaxDepth, "maximum dependency depth (must be positive)")
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "only include crates whose name contains this substring")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().StringVarP(&f.manifest, "manifest", "m", "", "read the root crate from a Cargo.toml manifest")
	cmd.Flags().StringVarP(&f.edgeList, "edge-list", "t", "", "read the whole graph from an edge-list file (test mode)")
	cmd.Flags().StringVar(&f.registryURL, "registry-url", "", "override the crates.io API base URL")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the cache and fetch fresh data")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the registry response cache")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "use a Redis cache backend at this URL")
}

// buildGraph constructs the dependency graph and determines the root crate
// from the command's flags and positional arguments.
//
// Edge-list mode loads the graph directly from a local file. Manifest mode
// takes the root and its direct dependencies from Cargo.toml and resolves
// the rest against the registry. Otherwise the named crate is resolved
// against crates.io.
func buildGraph(cmd *cobra.Command, f *sourceFlags, args []string) (*depgraph.Graph, string, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if f.maxDepth <= 0 {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "max-depth must be positive, got %d", f.maxDepth)
	}

	if f.edgeList != "" {
		if len(args) == 0 {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "crate name required with --edge-list")
		}
		logger.Debugf("loading edge list from %s", f.edgeList)
		g, err := edgelist.ParseFile(f.edgeList)
		if err != nil {
			return nil, "", err
		}
		return g, args[0], nil
	}

	backend, err := newCacheBackend(ctx, f.noCache, f.redisURL)
	if err != nil {
		return nil, "", err
	}
	defer backend.Close()

	resolver := deps.NewCratesResolver(backend, deps.DefaultCacheTTL, f.registryURL)

	var root string
	switch {
	case f.manifest != "":
		cargo, err := manifest.LoadCargo(f.manifest)
		if err != nil {
			return nil, "", err
		}
		if cargo.Name == "" {
			return nil, "", errors.New(errors.ErrCodeInvalidManifest, "%s declares no package name", f.manifest)
		}
		root = cargo.Name
		resolver = resolver.WithRoot(&deps.Package{
			Name:         cargo.Name,
			Version:      cargo.Version,
			Dependencies: cargo.Dependencies,
		})
	case len(args) > 0:
		root = args[0]
	default:
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "crate name or --manifest required")
	}

	opts := deps.Options{
		MaxDepth: f.maxDepth,
		Refresh:  f.refresh,
		Logger:   logger.Warnf,
	}

	prog := newProgress(logger)

	var g *depgraph.Graph
	if showLiveProgress(logger) {
		g, err = resolveWithProgress(ctx, resolver, root, opts)
	} else {
		g, err = resolver.Resolve(ctx, root, opts)
	}
	if err != nil {
		return nil, "", err
	}

	prog.done(fmt.Sprintf("Resolved %d crates from %s", g.NodeCount(), resolver.Name()))
	return g, root, nil
}

// showLiveProgress reports whether the interactive resolve display should
// run. Debug logging and the live display both write to stderr and would
// interleave, so verbose mode falls back to plain log lines.
func showLiveProgress(logger *charmlog.Logger) bool {
	return isatty.IsTerminal(os.Stderr.Fd()) && logger.GetLevel() > charmlog.DebugLevel
}

// openOutput returns the writer for command results: the file at path, or
// stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	return file, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
