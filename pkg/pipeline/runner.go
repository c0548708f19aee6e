package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lootdex/lootdex/pkg/cache"
	"github.com/lootdex/lootdex/pkg/catalog"
	"github.com/lootdex/lootdex/pkg/dataset"
	"github.com/lootdex/lootdex/pkg/errors"
	"github.com/lootdex/lootdex/pkg/gamedata"
	"github.com/lootdex/lootdex/pkg/prefab"
)

// Runner executes extraction runs with a shared cache backend.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a Runner. A nil cache disables result caching.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Execute runs the full pipeline and returns the produced record set.
//
// The run fails if neither source yields a single item record; an empty
// catalog almost always means the caller pointed at the wrong directories,
// and writing an empty items.json would silently clobber a previous run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.logger
	}
	opts = opts.WithDefaults()

	if err := errors.ValidateDirPath(opts.PrefabDir); err != nil {
		return nil, err
	}
	if opts.GamedataDir != "" {
		if err := errors.ValidateDirPath(opts.GamedataDir); err != nil {
			return nil, err
		}
	}
	if err := errors.ValidateDirPath(opts.OutDir); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger
	logger.Info("starting extraction run", "run_id", result.RunID)

	files, err := prefab.Locate(opts.PrefabDir)
	if err != nil {
		return nil, err
	}
	logger.Info("located description files", "count", len(files), "root", opts.PrefabDir)

	extractor := &prefab.Extractor{
		Cache:    r.cache,
		Workers:  opts.Workers,
		CacheTTL: opts.CacheTTL,
		Refresh:  opts.Refresh,
		Logger:   func(format string, args ...any) { logger.Warnf(format, args...) },
		OnFile:   opts.OnFile,
	}
	start := time.Now()
	batch, err := extractor.ExtractAll(ctx, files)
	if err != nil {
		return nil, err
	}
	result.Stats.ExtractTime = time.Since(start)
	result.Stats.PrefabFiles = batch.Files
	result.Stats.FailedFiles = batch.Failed
	result.Stats.CacheHits = batch.CacheHits
	result.Stats.PrefabItems = len(batch.Items)
	result.Stats.Recipes = len(batch.Recipes)
	logger.Info("extracted description files",
		"items", len(batch.Items),
		"recipes", len(batch.Recipes),
		"failed", batch.Failed,
		"cache_hits", batch.CacheHits,
		"duration", result.Stats.ExtractTime)

	var gamedataItems []catalog.ItemRecord
	if opts.GamedataDir != "" {
		start = time.Now()
		gamedataItems, err = gamedata.Load(opts.GamedataDir, gamedata.Options{
			Logger: func(format string, args ...any) { logger.Warnf(format, args...) },
		})
		if err != nil {
			return nil, err
		}
		result.Stats.LoadTime = time.Since(start)
		logger.Info("loaded gamedata items",
			"count", len(gamedataItems),
			"duration", result.Stats.LoadTime)
	}
	result.Stats.GamedataItems = len(gamedataItems)

	if len(batch.Items) == 0 && len(gamedataItems) == 0 {
		return nil, errors.New(errors.ErrCodeNoRecords,
			"no item records found in any source")
	}

	items := catalog.Merge(batch.Items, gamedataItems)
	result.Stats.MergedItems = len(items)
	logger.Info("merged item sources", "total", len(items))

	start = time.Now()
	items = catalog.ResolveRecipes(items, batch.Recipes)
	result.Stats.ResolveTime = time.Since(start)

	for i := range items {
		items[i].Normalize()
	}

	summary := dataset.Summarize(items)
	summary.RunID = result.RunID
	summary.GeneratedAt = time.Now().UTC()
	summary.PrefabItems = result.Stats.PrefabItems
	summary.GamedataItems = result.Stats.GamedataItems
	summary.Recipes = result.Stats.Recipes

	start = time.Now()
	if err := dataset.Write(opts.OutDir, items, summary); err != nil {
		return nil, err
	}
	result.Stats.WriteTime = time.Since(start)
	logger.Info("wrote dataset",
		"dir", opts.OutDir,
		"items", summary.TotalItems,
		"with_ingredients", summary.ItemsWithIngredients,
		"duration", result.Stats.WriteTime)

	result.Items = items
	result.Summary = summary
	return result, nil
}
