// Package dataset persists the final item list and its derived summary.
//
// Two artifacts are written per run: items.json, the ordered array of item
// records with stable field names for downstream consumers, and
// summary.json, a small derived record for quick inspection and monitoring.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lootdex/lootdex/pkg/catalog"
	"github.com/lootdex/lootdex/pkg/errors"
)

// Output artifact file names.
const (
	ItemsFile   = "items.json"
	SummaryFile = "summary.json"
)

// Summary is the derived record written next to the item list.
type Summary struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`

	TotalItems              int `json:"totalItems"`
	ItemsWithIngredients    int `json:"itemsWithIngredients"`
	ItemsWithoutIngredients int `json:"itemsWithoutIngredients"`

	// CategoryCodes is the sorted set of distinct category codes present.
	CategoryCodes []int `json:"categoryCodes"`

	// Source counts, for drift detection between runs.
	PrefabItems   int `json:"prefabItems"`
	GamedataItems int `json:"gamedataItems"`
	Recipes       int `json:"recipes"`
}

// Summarize derives the count fields of a Summary from the final item list.
// Run identity and source counts are filled in by the caller.
func Summarize(items []catalog.ItemRecord) Summary {
	sum := Summary{
		TotalItems:    len(items),
		CategoryCodes: []int{},
	}

	codes := make(map[int]bool)
	for _, it := range items {
		if len(it.Ingredients) > 0 {
			sum.ItemsWithIngredients++
		} else {
			sum.ItemsWithoutIngredients++
		}
		if it.CategoryID != nil {
			codes[*it.CategoryID] = true
		}
	}

	for code := range codes {
		sum.CategoryCodes = append(sum.CategoryCodes, code)
	}
	sort.Ints(sum.CategoryCodes)

	return sum
}

// Write persists the item list and summary into dir, creating it if needed.
// A write failure is fatal to the run and is returned, not retried.
func Write(dir string, items []catalog.ItemRecord, sum Summary) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create output dir %s", dir)
	}

	if err := writeJSON(filepath.Join(dir, ItemsFile), items); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, SummaryFile), sum)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "encode %s", path)
	}
	return nil
}

// ReadItems loads a previously written items.json. Used by the publish
// command to push an existing dataset into a store.
func ReadItems(path string) ([]catalog.ItemRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	var items []catalog.ItemRecord
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", path)
	}
	return items, nil
}
