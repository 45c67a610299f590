// Package cache memoizes expensive remote discovery calls so repeated runs
// within the retention window do not re-spend API quota. Entries expire by
// TTL on read; there is no other invalidation, staleness is the accepted
// price of quota safety. The cache is injected wherever it is used, so tests
// can substitute an in-memory store or disable caching entirely.
package cache

import (
	"time"
)

// Store persists cache entries. Implementations: SQLiteStore (across process
// invocations) and MemoryStore (tests).
type Store interface {
	Get(key string) (payload []byte, cachedAt time.Time, ok bool, err error)
	Set(key string, payload []byte, cachedAt time.Time) error
}

// Cache wraps a store with a TTL and a load-through interface.
type Cache struct {
	store Store
	ttl   time.Duration
}

// New creates a cache over the given store. A non-positive ttl means entries
// never expire.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Disabled returns a cache that always invokes the loader.
func Disabled() *Cache {
	return &Cache{}
}

// Do returns the cached payload for key if present and fresh; otherwise it
// invokes loader and stores the result. A failed store write is not an
// error: the lost write only costs one extra remote call on the next run.
func (c *Cache) Do(key string, loader func() ([]byte, error)) ([]byte, error) {
	if c == nil || c.store == nil {
		return loader()
	}

	if payload, cachedAt, ok, err := c.store.Get(key); err == nil && ok {
		if c.ttl <= 0 || time.Since(cachedAt) <= c.ttl {
			return payload, nil
		}
	}

	payload, err := loader()
	if err != nil {
		return nil, err
	}

	_ = c.store.Set(key, payload, time.Now())

	return payload, nil
}
