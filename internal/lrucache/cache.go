package lrucache

import (
	"iter"
	"log/slog"
)

// Cache is a key-value cache that tracks least-recently-used order.
//
// Keys are compared with ==, so pointer keys give identity semantics: two
// distinct objects with equal contents are two different entries. The cache
// holds keys and values without taking ownership of what they point to.
//
// The front of the recency order is the least recently used key, the back
// the most recently put or read one.
//
// Cache is not safe for concurrent use. The zero value is not valid, use New.
type Cache[K comparable, V any] struct {
	entries  entryStore[K, V]
	keys     recencyList[K]
	logger   *slog.Logger
	onEvict  func(key K, value V)
	stats    counters
	capacity int
	count    int
}

// New creates an empty cache.
//
// Example:
//
//	c := lrucache.New[*ast.Node, *Compiled](lrucache.WithCapacity(128))
//	if err := c.Put(n, compiled); err != nil {
//	    return err
//	}
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Cache[K, V]{
		keys:     newRecencyList[K](),
		logger:   o.logger,
		capacity: o.capacity,
	}
	if o.arenaLimit > 0 {
		c.keys.limit = o.arenaLimit
	}

	return c
}

// SetEvictCallback sets a function called for every entry that leaves the
// cache through capacity eviction, Resize, Remove or Free.
func (c *Cache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.onEvict = fn
}

// Put stores value under key and marks key as most recently used.
//
// A repeated Put of a present key overwrites its value in place and does not
// change Size. When a capacity is set and a new key would exceed it, the least
// recently used entry is evicted first.
//
// Returns ErrArenaExhausted if no list node can be allocated; the cache is
// left unchanged in that case.
func (c *Cache[K, V]) Put(key K, value V) error {
	if e, ok := c.entries.lookup(key); ok {
		e.value = value
		c.keys.moveToBack(e.node)
		return nil
	}

	// The store only learns about key once the list holds it, so an evict
	// callback never observes a half-inserted entry.
	if c.capacity > 0 && c.count >= c.capacity {
		c.evictOldest()
	}

	h, err := c.keys.pushBack(key)
	if err != nil {
		return err
	}

	e, _ := c.entries.insertOrGet(key)
	e.value = value
	e.node = h
	c.count++
	c.stats.entries.Store(int64(c.count))

	return nil
}

// Get returns the value stored under key and marks key as most recently used.
// A miss returns the zero value and false and leaves the order untouched.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries.lookup(key)
	if !ok {
		c.stats.misses.Add(1)
		var zero V
		return zero, false
	}

	c.keys.moveToBack(e.node)
	c.stats.hits.Add(1)

	return e.value, true
}

// Peek returns the value stored under key without updating recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	e, ok := c.entries.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Contains reports whether key is present without updating recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.entries.lookup(key)
	return ok
}

// Remove deletes key from the cache and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	e, ok := c.entries.lookup(key)
	if !ok {
		return false
	}
	c.removeEntry(key, e)
	return true
}

// Size returns the number of entries.
func (c *Cache[K, V]) Size() int {
	return c.count
}

// Capacity returns the configured entry limit, 0 when unbounded.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Resize sets a new capacity and evicts least recently used entries until
// the cache fits. Zero or a negative value disables the limit.
// Returns the number of evicted entries.
func (c *Cache[K, V]) Resize(capacity int) int {
	c.capacity = max(capacity, 0)
	if c.capacity == 0 {
		return 0
	}

	evicted := 0
	for c.count > c.capacity {
		c.evictOldest()
		evicted++
	}

	if evicted > 0 {
		c.logger.Debug("lrucache: resized",
			slog.Int("capacity", c.capacity),
			slog.Int("evicted", evicted),
		)
	}

	return evicted
}

// Front returns the least recently used key.
func (c *Cache[K, V]) Front() (K, bool) {
	return c.keys.front()
}

// Back returns the most recently used key.
func (c *Cache[K, V]) Back() (K, bool) {
	return c.keys.back()
}

// Keys returns all keys from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	out := make([]K, 0, c.count)
	for k := range c.keys.all() {
		out = append(out, k)
	}
	return out
}

// All iterates entries from least to most recently used without updating
// recency. The cache must not be modified during iteration.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k := range c.keys.all() {
			e, _ := c.entries.lookup(k)
			if !yield(k, e.value) {
				return
			}
		}
	}
}

// Stats returns a snapshot of the cache counters.
// It is safe to call from any goroutine.
func (c *Cache[K, V]) Stats() Stats {
	return c.stats.snapshot()
}

// Free drops every entry and returns the cache to its empty state: no
// entries, empty recency order, capacity 0. The logger and the evict callback
// are kept; the callback sees every entry from least to most recently used.
// Hit, miss and eviction counters keep counting across Free so exported
// metrics stay monotonic. Keys and values themselves are never released by
// the cache.
//
// Free is idempotent and the cache stays usable afterwards.
func (c *Cache[K, V]) Free() {
	if c.onEvict != nil {
		for k, v := range c.All() {
			c.onEvict(k, v)
		}
	}

	if c.count > 0 {
		c.logger.Debug("lrucache: freed", slog.Int("entries", c.count))
	}

	c.entries.clear()
	c.keys.clear()
	c.capacity = 0
	c.count = 0
	c.stats.entries.Store(0)
}

// evictOldest removes the least recently used entry.
func (c *Cache[K, V]) evictOldest() {
	h, ok := c.keys.frontHandle()
	if !ok {
		return
	}
	key := c.keys.nodes[h].key
	e, _ := c.entries.lookup(key)

	c.logger.Debug("lrucache: evicting least recently used entry",
		slog.Any("key", key),
		slog.Int("capacity", c.capacity),
	)

	c.removeEntry(key, e)
	c.stats.evictions.Add(1)
}

// removeEntry detaches key from both the list and the store and fires the
// evict callback.
func (c *Cache[K, V]) removeEntry(key K, e *entry[V]) {
	c.keys.remove(e.node)
	c.entries.remove(key)
	c.count--
	c.stats.entries.Store(int64(c.count))

	if c.onEvict != nil {
		c.onEvict(key, e.value)
	}
}
