package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores parse results as one JSON file per entry under the user
// cache directory. It is the default backend for local extraction runs.
//
// Keys produced by Key already carry a namespace and a content hash, so the
// on-disk layout groups entries by namespace and shards on the hash itself:
//
//	<dir>/prefab/ab/cdef...json
//
// A record-format change can therefore be invalidated by removing a single
// namespace directory without touching the rest of the cache.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry wraps a stored parse result with its expiry.
type fileEntry struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Get retrieves a stored parse result.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// An unreadable entry only costs a re-parse.
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Payload, true, nil
}

// Set stores a parse result. A ttl of zero stores without expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{
		Payload: data,
	}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, entryData, 0644)
}

// Delete removes a stored parse result.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a cache key to its entry file. Keys built by Key reuse their
// embedded content hash for sharding; anything else is hashed first so
// arbitrary keys still land on a valid path.
func (c *FileCache) path(key string) string {
	ns, hash, ok := strings.Cut(key, ":")
	if !ok || len(hash) < 4 || !isHex(hash) {
		ns, hash = "misc", Hash([]byte(key))
	}
	return filepath.Join(c.dir, ns, hash[:2], hash[2:]+".json")
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
