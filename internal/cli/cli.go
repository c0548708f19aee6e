// Package cli implements the lootdex command-line interface.
//
// This package provides commands for extracting item catalogs from game
// export trees, publishing previously generated datasets, and managing the
// parse-result cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - extract: Run the full extraction pipeline and write the dataset
//   - publish: Push a generated items.json into a MongoDB collection
//   - cache: Manage the parse-result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers live
// on the CLI value and are handed to the pipeline explicitly.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lootdex/lootdex/pkg/buildinfo"
	"github.com/lootdex/lootdex/pkg/cache"
	"github.com/lootdex/lootdex/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "lootdex"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "lootdex",
		Short:        "Lootdex extracts game item catalogs into a unified dataset",
		Long:         `Lootdex is a CLI tool for extracting item and recipe data from game export trees and auxiliary JSON sources, merging them into a single normalized catalog with resolved crafting recipes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.extractCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg *Config, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

// newCache selects the cache backend. A configured Redis address takes
// priority over the file cache; a Redis connection failure falls back to
// the file cache rather than aborting the run.
func (c *CLI) newCache(cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg != nil && cfg.Redis.Addr != "" {
		store, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			return store, nil
		}
		c.Logger.Warn("Redis cache unavailable, falling back to file cache", "addr", cfg.Redis.Addr, "error", err)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("No cache directory available, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/lootdex/).
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
