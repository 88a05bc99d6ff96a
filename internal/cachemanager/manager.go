// Package cachemanager provides small typed caches for rendering state that
// is expensive to rebuild on every frame.
package cachemanager

import "time"

// CacheManager is a typed key/value cache with per-entry expiry.
type CacheManager[K ~string, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
	Len() int
}
