package prefab

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/lootdex/lootdex/pkg/cache"
	"github.com/lootdex/lootdex/pkg/catalog"
)

// DefaultWorkers bounds the extraction pool when no size is configured.
const DefaultWorkers = 8

// Batch holds the combined result of extracting a set of description files.
// Records appear in source-path order so downstream merging is reproducible
// regardless of worker scheduling.
type Batch struct {
	Items   []catalog.ItemRecord
	Recipes []catalog.RecipeRecord

	Files     int // files attempted
	Failed    int // files that could not be read
	CacheHits int // files served from the parse cache
}

// Extractor runs the per-file parser across a bounded worker pool.
//
// Each file's parse is independent and side-effect-free, so failures never
// cancel sibling work: an unreadable or malformed file is reported through
// Logger and skipped. Parsed per-file results are memoized in Cache keyed by
// the content hash of the file.
type Extractor struct {
	Cache    cache.Cache   // nil disables caching
	Workers  int           // pool size; DefaultWorkers when <= 0
	CacheTTL time.Duration // TTL for cached parse results; zero means no expiry
	Refresh  bool          // bypass cached results

	// Logger receives per-file failure and warning reports. Optional.
	Logger func(format string, args ...any)

	// OnFile is invoked after each file completes, with the number of files
	// done so far and the total. Optional; used for progress display.
	OnFile func(done, total int)
}

// fileRecords is the cacheable parse result for one file.
type fileRecords struct {
	Item     *catalog.ItemRecord   `json:"item,omitempty"`
	Recipe   *catalog.RecipeRecord `json:"recipe,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
}

type outcome struct {
	path    string
	records fileRecords
	hit     bool
	err     error
}

// ExtractAll parses every file in paths and returns the ordered batch.
// It returns an error only when ctx is cancelled; individual file failures
// are counted and logged, never fatal.
func (e *Extractor) ExtractAll(ctx context.Context, paths []string) (*Batch, error) {
	workers := e.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	logf := e.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}
	c := e.Cache
	if c == nil {
		c = cache.NewNullCache()
	}

	jobs := make(chan string)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- e.extractOne(ctx, c, path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]outcome, 0, len(paths))
	for out := range results {
		outcomes = append(outcomes, out)
		if e.OnFile != nil {
			e.OnFile(len(outcomes), len(paths))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].path < outcomes[j].path
	})

	batch := &Batch{Files: len(outcomes)}
	for _, out := range outcomes {
		if out.err != nil {
			batch.Failed++
			logf("extract %s: %v", out.path, out.err)
			continue
		}
		if out.hit {
			batch.CacheHits++
		}
		for _, w := range out.records.Warnings {
			logf("extract %s: %s", out.path, w)
		}
		if out.records.Item != nil {
			batch.Items = append(batch.Items, *out.records.Item)
		}
		if out.records.Recipe != nil {
			batch.Recipes = append(batch.Recipes, *out.records.Recipe)
		}
	}

	return batch, nil
}

// extractOne reads and parses a single file, consulting the cache first.
func (e *Extractor) extractOne(ctx context.Context, c cache.Cache, path string) outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return outcome{path: path, err: err}
	}

	key := cache.Key(cache.NamespacePrefab, cache.Hash(data))

	if !e.Refresh {
		if cached, hit, err := c.Get(ctx, key); err == nil && hit {
			var records fileRecords
			if json.Unmarshal(cached, &records) == nil {
				return outcome{path: path, records: records, hit: true}
			}
		}
	}

	res := Parse(string(data), filepath.Base(path))
	records := fileRecords{Item: res.Item, Recipe: res.Recipe, Warnings: res.Warnings}

	if encoded, err := json.Marshal(records); err == nil {
		// Cache write failures only cost a re-parse next run.
		_ = c.Set(ctx, key, encoded, e.CacheTTL)
	}

	return outcome{path: path, records: records}
}
