package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/venom/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
	// NoExpiration keeps an entry until it is deleted or flushed.
	NoExpiration = gocache.NoExpiration
)

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)

// NewInMemoryCacheManager returns an empty cache. useCase names the cache in
// log lines.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value stored under key.
func (c *InMemoryCacheManager[K, V]) Get(key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type in cache", "cache", c.useCase, "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key for ttl. A zero ttl uses the cache default.
func (c *InMemoryCacheManager[K, V]) Set(key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys.
func (c *InMemoryCacheManager[K, V]) Delete(keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes every entry.
func (c *InMemoryCacheManager[K, V]) Flush() {
	n := c.cache.ItemCount()
	c.cache.Flush()
	if n > 0 {
		log.Debug(log.CatCache, "cache flushed", "cache", c.useCase, "entries", n)
	}
}

// Len returns the number of entries, including expired ones not yet cleaned.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}
