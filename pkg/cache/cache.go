// Package cache provides the parse-result cache for lootdex.
//
// Extraction runs repeatedly over mostly-unchanged export trees, so parsed
// per-file results are memoized keyed by the content hash of the source
// file. A renamed or moved file still hits; a file whose content changed
// cannot hit a stale entry.
//
// Two production backends exist:
//   - file: per-entry JSON files under the user cache directory (default)
//   - redis: shared cache for running extractions on more than one machine
//
// NullCache disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Namespaces for cache keys. Each record kind gets its own namespace so
// format changes can be invalidated independently.
const (
	NamespacePrefab = "prefab"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit; a miss
	// is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builds a namespaced cache key from a content hash.
func Key(namespace, contentHash string) string {
	return namespace + ":" + contentHash
}
