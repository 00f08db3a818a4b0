// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"sync"
	"time"
)

// resultCache is a small in-process TTL cache for computed
// recommendation responses. Entries are evicted lazily: expired entries
// are dropped on read, and a write that would exceed the entry cap
// first sweeps expired entries, then discards arbitrary entries until
// there is room. The cache holds at most a few thousand small response
// structs, so no LRU bookkeeping is warranted.
type resultCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

func newResultCache(cfg CacheConfig) *resultCache {
	return &resultCache{
		entries:    make(map[string]cacheEntry),
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
	}
}

// get returns the cached value for key, or nil when absent or expired.
func (c *resultCache) get(key string) any {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another writer may have
		// refreshed the entry.
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil
	}
	return entry.value
}

// set stores value under key with the cache TTL.
func (c *resultCache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		for k := range c.entries {
			if len(c.entries) < c.maxEntries {
				break
			}
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// purge drops every cached entry. Exposed for invalidation after
// catalog writes.
func (c *resultCache) purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// len reports the current entry count.
func (c *resultCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
