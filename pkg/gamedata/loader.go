// Package gamedata loads the auxiliary JSON item source: a flat directory
// with one JSON object per item definition, using its own key names separate
// from the prefab marker set.
package gamedata

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/lootdex/lootdex/pkg/catalog"
	"github.com/lootdex/lootdex/pkg/errors"
)

// JSON key names used by the gamedata source.
const (
	keyItemID       = "itemid"
	keyShortname    = "shortname"
	keyName         = "Name"
	keyDescription  = "Description"
	keyCategory     = "Category"
	keyMaxStack     = "maxstack"
	keyVolume       = "volume"
	keyMaxDraggable = "maxDraggable"
	keyWearable     = "isWearable"
	keyHoldable     = "isHoldable"
	keyUsable       = "isUsable"
	keyHasSkins     = "hasSkins"
)

// Options configures gamedata loading.
type Options struct {
	// Logger receives per-file skip reports. Optional.
	Logger func(format string, args ...any)
}

// Load parses every JSON file in dir into item records. A missing directory
// yields no records and no error. Files that are not valid JSON or miss a
// required key are logged and skipped; the batch never aborts.
func Load(dir string, opts Options) ([]catalog.ItemRecord, error) {
	logf := opts.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGamedata, err, "read gamedata directory %s", dir)
	}

	var items []catalog.ItemRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			logf("gamedata %s: %v", entry.Name(), err)
			continue
		}

		item, reason := parseItem(data)
		if item == nil {
			logf("gamedata %s: %s, skipped", entry.Name(), reason)
			continue
		}
		items = append(items, *item)
	}

	return items, nil
}

// parseItem converts one gamedata document into an item record.
// Returns nil and a reason when the document fails the required-key checks.
func parseItem(data []byte) (*catalog.ItemRecord, string) {
	if !gjson.ValidBytes(data) {
		return nil, "invalid JSON"
	}
	doc := gjson.ParseBytes(data)

	id := doc.Get(keyItemID)
	if !id.Exists() || id.Type != gjson.Number {
		return nil, "missing or non-numeric itemid"
	}
	shortname := doc.Get(keyShortname)
	if !shortname.Exists() || shortname.String() == "" {
		return nil, "missing shortname"
	}
	name := doc.Get(keyName)
	if !name.Exists() || name.String() == "" {
		return nil, "missing Name"
	}

	item := &catalog.ItemRecord{
		ItemID:      int(id.Int()),
		Shortname:   shortname.String(),
		DisplayName: name.String(),
		Origin:      catalog.OriginGamedata,
	}

	if v := doc.Get(keyDescription); v.Exists() {
		desc := v.String()
		item.Description = &desc
	}
	if v := doc.Get(keyCategory); v.Exists() && v.Type == gjson.Number {
		code := int(v.Int())
		item.CategoryID = &code
	}
	if v := doc.Get(keyMaxStack); v.Exists() && v.Type == gjson.Number {
		n := int(v.Int())
		item.Stackable = &n
	}
	if v := doc.Get(keyVolume); v.Exists() && v.Type == gjson.Number {
		n := int(v.Int())
		item.Volume = &n
	}
	if v := doc.Get(keyMaxDraggable); v.Exists() && v.Type == gjson.Number {
		n := int(v.Int())
		item.MaxDraggable = &n
	}
	if v := doc.Get(keyWearable); v.Exists() {
		b := v.Bool()
		item.Wearable = &b
	}
	if v := doc.Get(keyHoldable); v.Exists() {
		b := v.Bool()
		item.Holdable = &b
	}
	if v := doc.Get(keyUsable); v.Exists() {
		b := v.Bool()
		item.Usable = &b
	}
	if v := doc.Get(keyHasSkins); v.Exists() {
		b := v.Bool()
		item.HasSkins = &b
	}

	item.CategoryName = catalog.CategoryName(item.CategoryID)
	return item, ""
}
