// Package prefab extracts item definitions and crafting recipes from the
// description files an asset export tool writes for each in-game object.
//
// The files are semi-structured text: known field markers on their own
// lines, nested blocks indicated by indentation, and plenty of content the
// extractor does not care about. Parsing is pattern-based field extraction,
// not a grammar; unknown fields are ignored and field order is irrelevant.
package prefab

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the description-file suffix produced by the export tool.
const Extension = ".prefab.txt"

// Locate walks root depth-first and returns the paths of all description
// files beneath it, at any depth. A missing root is a "no files found"
// condition, not an error, and unreadable entries are skipped.
func Locate(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var paths []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // skip unreadable entries, keep walking
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), Extension) {
			paths = append(paths, path)
		}
		return nil
	})

	return paths, nil
}
