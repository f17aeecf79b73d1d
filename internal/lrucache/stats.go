package lrucache

import "sync/atomic"

// Stats is a point-in-time snapshot of cache counters.
// Hits, Misses and Evictions only grow for the lifetime of the cache.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

// counters are atomic so a metrics collector may read them from another
// goroutine while the owner keeps mutating the cache.
type counters struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	entries   atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   int(c.entries.Load()),
	}
}
