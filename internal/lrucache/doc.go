// Package lrucache provides a single-owner key-value cache with
// least-recently-used ordering.
//
// The cache combines a hash map for O(1) lookups with a doubly linked
// recency list stored in an index-addressed arena. Every Put and Get moves
// the touched key to the back of the list, so the front is always the least
// recently used key.
//
// # Identity keys
//
// Keys are compared with ==. Use pointers or opaque integer handles to get
// identity semantics:
//
//	type node struct{ name string }
//
//	a, b := &node{"x"}, &node{"x"}
//	c := lrucache.New[*node, string]()
//	_ = c.Put(a, "first")
//	_ = c.Put(b, "second") // a and b are distinct keys
//
// The cache never copies or releases keys and values. Callers keep
// them alive for as long as they are cached.
//
// # Capacity
//
// By default the cache is unbounded. Use [WithCapacity] or [Cache.Resize] to
// enable eviction: when a new key would exceed the limit, the least recently
// used entry is removed before the new one is inserted.
//
//	c := lrucache.New[*node, string](lrucache.WithCapacity(2))
//
// [Cache.Free] resets the cache to its initial state, including capacity 0.
//
// # Errors
//
// A miss is not an error: [Cache.Get] returns the zero value and false.
// [Cache.Put] returns [ErrArenaExhausted] when the recency list cannot
// address another node; the cache is unchanged in that case.
//
// # Concurrency
//
// Cache performs no locking. Only [Cache.Stats] may be called from other
// goroutines, which lets a metrics collector scrape a live cache.
package lrucache
