package stacio

import (
	"context"
	"time"

	"github.com/stac-utils/gostac/pkg/cache"
)

// CachedSource wraps a Source so repeated reads of the same document
// hit the cache instead of the backend. Writes go through to the
// backend and refresh the cached copy.
type CachedSource struct {
	inner     Source
	cache     cache.Cache
	namespace string
	ttl       time.Duration
}

// NewCachedSource wraps inner with c. The namespace isolates this
// source's entries when the cache backend is shared; a non-positive
// ttl caches forever.
func NewCachedSource(inner Source, c cache.Cache, namespace string, ttl time.Duration) *CachedSource {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &CachedSource{inner: inner, cache: c, namespace: namespace, ttl: ttl}
}

// Read returns the cached bytes when present, falling back to the
// backend and caching the result. Cache errors degrade to backend
// reads rather than failing the operation.
func (s *CachedSource) Read(ctx context.Context, href string) ([]byte, error) {
	key := cache.DocumentKey(s.namespace, normalizeKey(href))
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return data, nil
	}
	data, err := s.inner.Read(ctx, href)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, data, s.ttl)
	return data, nil
}

// Write stores the document in the backend and refreshes the cache.
func (s *CachedSource) Write(ctx context.Context, href string, data []byte) error {
	if err := s.inner.Write(ctx, href, data); err != nil {
		return err
	}
	key := cache.DocumentKey(s.namespace, normalizeKey(href))
	_ = s.cache.Set(ctx, key, data, s.ttl)
	return nil
}

var _ Source = (*CachedSource)(nil)
