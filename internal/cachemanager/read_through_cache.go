package cachemanager

import "time"

// ReadThroughCache fills misses by calling fn.
type ReadThroughCache[K ~string, V any] struct {
	cache CacheManager[K, V]
	fn    func(key K) (V, error)
	ttl   time.Duration
}

// NewReadThroughCache wraps cache. Values returned by fn are stored for ttl;
// errors are returned and nothing is stored.
func NewReadThroughCache[K ~string, V any](cache CacheManager[K, V], ttl time.Duration, fn func(key K) (V, error)) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{cache: cache, fn: fn, ttl: ttl}
}

// Get returns the cached value for key, computing it on a miss.
func (r *ReadThroughCache[K, V]) Get(key K) (V, error) {
	if value, ok := r.cache.Get(key); ok {
		return value, nil
	}

	value, err := r.fn(key)
	if err != nil {
		return value, err
	}
	r.cache.Set(key, value, r.ttl)
	return value, nil
}

// Invalidate drops every cached value.
func (r *ReadThroughCache[K, V]) Invalidate() {
	r.cache.Flush()
}
