// Package pipeline provides the core extraction pipeline for lootdex.
//
// This package implements the complete locate → extract → load → merge →
// resolve → write run so the CLI has a single entry point with consistent
// behavior and logging.
//
// # Architecture
//
// The pipeline consists of sequential stages:
//
//  1. Locate: walk the prefab export tree for description files
//  2. Extract: parse each file across a bounded worker pool
//  3. Load: parse the gamedata JSON item source
//  4. Merge: unify both item sets by itemId (gamedata field precedence)
//  5. Resolve: join recipes by shortname and resolve ingredient references
//  6. Write: persist items.json and summary.json
//
// Stages never share mutable state; a run can be aborted between stages
// without corrupting previously written output because the writer only runs
// after the full record set is computed in memory.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lootdex/lootdex/pkg/catalog"
	"github.com/lootdex/lootdex/pkg/dataset"
	"github.com/lootdex/lootdex/pkg/prefab"
)

// Default values shared by the CLI and any other embedder.
const (
	// DefaultWorkers is the extraction pool size.
	DefaultWorkers = prefab.DefaultWorkers

	// DefaultCacheTTL is how long cached parse results stay valid. Export
	// trees are refreshed at most a few times a week, so a week of TTL
	// keeps warm runs cheap without growing the cache forever.
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// Options contains all configuration for an extraction run.
type Options struct {
	// PrefabDir is the root of the description-file export tree.
	PrefabDir string

	// GamedataDir holds the auxiliary JSON item files.
	GamedataDir string

	// OutDir receives items.json and summary.json.
	OutDir string

	Workers  int           // extraction pool size (default: DefaultWorkers)
	CacheTTL time.Duration // parse-cache TTL (default: DefaultCacheTTL)
	Refresh  bool          // bypass cached parse results

	// Logger receives stage progress. Defaults to a discarding logger.
	Logger *log.Logger

	// OnFile is forwarded to the extractor for progress display. Optional.
	OnFile func(done, total int)
}

// WithDefaults returns a copy of Options with zero values replaced.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return opts
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PrefabFiles   int // description files located
	FailedFiles   int // files that could not be read
	CacheHits     int // files served from the parse cache
	PrefabItems   int // item records from description files
	Recipes       int // recipe records from description files
	GamedataItems int // item records from the JSON source
	MergedItems   int // unified records after merge

	ExtractTime time.Duration
	LoadTime    time.Duration
	ResolveTime time.Duration
	WriteTime   time.Duration
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this extraction run.
	RunID string

	// Items is the final normalized record set, as written.
	Items []catalog.ItemRecord

	// Summary is the derived record written next to the items.
	Summary dataset.Summary

	// Stats contains timing and size information.
	Stats Stats
}
