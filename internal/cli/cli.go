// Package cli implements the cratewalk command-line interface.
//
// This package provides commands for exploring the dependency graph of a
// Rust crate: rendering it as a depth-bounded ASCII tree, computing a
// reverse-topological loading order, and managing the registry response
// cache. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - tree: Render the dependency tree of a crate
//   - order: Compute the order in which dependencies load
//   - cache: Manage the registry response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cratewalk/cratewalk/pkg/buildinfo"
	"github.com/cratewalk/cratewalk/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "cratewalk"

// Execute runs the cratewalk CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Cratewalk explores Rust crate dependency graphs",
		Long:         `Cratewalk is a CLI tool for exploring the dependency graph of a Rust crate: it renders a depth-bounded dependency tree and computes the order in which dependencies load, fetching metadata from crates.io or reading local files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newTreeCmd())
	root.AddCommand(newOrderCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/cratewalk/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCacheBackend selects the cache backend for registry responses.
// Precedence: --no-cache disables caching entirely, --redis-url selects
// Redis, otherwise a file cache under the XDG cache directory. A file
// cache that cannot be created degrades silently to no caching.
func newCacheBackend(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
