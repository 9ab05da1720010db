// Package cache provides byte-level caching for serialized STAC
// documents: a file cache for local tooling, a Redis cache for shared
// deployments, a null cache to disable caching, and a scoped wrapper
// for namespace isolation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
// The Cache interface itself reports misses through the ok result.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque document bytes under string keys with optional
// expiration.
type Cache interface {
	// Get retrieves a value. A miss is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value; deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// DocumentKey builds a cache key for a STAC document href within a
// namespace. Hrefs are hashed so arbitrary paths become safe, evenly
// distributed keys.
func DocumentKey(namespace, href string) string {
	return namespace + ":doc:" + Hash([]byte(href))
}

// Hash computes the SHA-256 of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
