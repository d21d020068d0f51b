// Package memo provides a small thread-safe memoization table with a soft
// size limit, used to back the render-validation cache.
package memo

import "sync"

// Cache is a generic thread-safe memo table. When the table exceeds its
// soft limit, the least recently used entries are evicted in a batch.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	inflight  map[K]*call[V]
	softLimit int
	tick      int64 // monotonic access counter
}

type entry[V any] struct {
	value V
	atime int64 // tick at last access
}

// call tracks one in-progress create so callers racing on the same key
// wait for it instead of recomputing, while other keys stay unblocked.
type call[V any] struct {
	done  chan struct{}
	value V
}

// New creates a cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		inflight:  make(map[K]*call[V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value. Returns (zero, false) on a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// GetOrCreate returns the cached value for key, computing and storing it
// with create on a miss. create runs outside the cache lock: callers
// racing on the same key wait for the one in-flight compute and share its
// result, while lookups and computes for other keys proceed unblocked.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.tick++
		e.atime = c.tick
		c.mu.Unlock()
		return e.value
	}
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-cl.done
		return cl.value
	}
	cl := &call[V]{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.value = create()

	c.mu.Lock()
	delete(c.inflight, key)
	c.tick++
	c.entries[key] = &entry[V]{value: cl.value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evict()
	}
	c.mu.Unlock()

	close(cl.done)
	return cl.value
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[V])
	c.tick = 0
}

// evict drops the oldest quarter of the table. Caller must hold c.mu.
// A batch eviction amortizes the scan cost over many insertions.
func (c *Cache[K, V]) evict() {
	target := c.softLimit * 3 / 4
	if target < 1 {
		target = 1
	}
	for len(c.entries) > target {
		var (
			oldestKey  K
			oldestTick int64 = -1
		)
		for k, e := range c.entries {
			if oldestTick < 0 || e.atime < oldestTick {
				oldestKey = k
				oldestTick = e.atime
			}
		}
		delete(c.entries, oldestKey)
	}
}
