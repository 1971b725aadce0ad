// Package cache provides small thread-safe LRU caches for values the
// engine derives repeatedly: convolution kernels, compiled GPU
// pipelines, resampled lookup tables.
//
// Two flavors cover the engine's needs. Cache is a single-lock LRU for
// low-traffic keys (a filter rarely sees more than a handful of kernel
// radii per run). ShardedCache spreads keys over 16 independently locked
// shards for values requested from many worker goroutines at once.
package cache

import "sync"

// Cache is a generic thread-safe cache with a soft entry limit. When the
// limit is exceeded the least recently used quarter of the entries is
// evicted in one batch, keeping eviction off the per-lookup path.
//
// A Cache must not be copied after first use.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int

	// tick is a monotonic access counter; entries carry the tick of
	// their last use instead of a timestamp.
	tick int64
}

type cacheEntry[V any] struct {
	value V
	atime int64
}

// New creates a cache holding at most softLimit entries. A softLimit of
// 0 disables eviction.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	entry.atime = c.tick
	return entry.value, true
}

// Set stores a value, evicting the oldest entries when the soft limit is
// exceeded.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

// GetOrCreate returns the cached value for key, calling create to
// produce it on a miss. create runs under the cache lock, so concurrent
// callers never compute the same value twice; keep it cheap.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.tick++
		entry.atime = c.tick
		return entry.value
	}

	value := create()
	c.tick++
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return value
}

// Delete removes an entry, reporting whether it existed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[V])
	c.tick = 0
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the soft limit.
func (c *Cache[K, V]) Capacity() int {
	return c.softLimit
}

// evictOldest drops entries until the cache is at 3/4 of its soft limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := c.softLimit * 3 / 4
	if target < 1 {
		target = 1
	}
	toEvict := len(c.entries) - target
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, aged{key: key, atime: e.atime})
	}

	// Selection of the oldest few; eviction batches are small enough
	// that a partial selection sort beats sorting the whole slice.
	for i := 0; i < toEvict && i < len(all); i++ {
		minIdx := i
		for j := i + 1; j < len(all); j++ {
			if all[j].atime < all[minIdx].atime {
				minIdx = j
			}
		}
		all[i], all[minIdx] = all[minIdx], all[i]
		delete(c.entries, all[i].key)
	}
}

// Stats describes cache usage.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the configured limit (per shard for ShardedCache).
	Capacity int
	// Hits and Misses count lookups (ShardedCache only).
	Hits   uint64
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 when unused.
	HitRate float64
	// Evictions counts entries dropped by the limit (ShardedCache only).
	Evictions uint64
}

// Stats returns current usage numbers.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: len(c.entries), Capacity: c.softLimit}
}
