// Package cache stores opaque byte payloads with a time to live.
//
// Three backends share the [Cache] interface:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for multi-instance servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// The registry tools cache catalog index responses so repeated analyses do
// not refetch the index on every run. Keys are built with [Key] and are
// namespaced by their producer ("catalog", "http").
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a key-value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached payload and true on a hit. A miss is not an
	// error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key joins a namespace and key parts into a cache key, e.g.
// Key("catalog", "https://cdn.example/index.json") -> "catalog:https://cdn.example/index.json".
func Key(namespace string, parts ...string) string {
	return namespace + ":" + strings.Join(parts, ":")
}
