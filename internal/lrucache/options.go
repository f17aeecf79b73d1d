package lrucache

import (
	"log/slog"

	"github.com/dmitrymomot/lrucache/pkg/logger"
)

// Option configures a Cache.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	capacity   int
	arenaLimit int
}

func defaultOptions() *options {
	return &options{
		logger:   logger.NewNope(),
		capacity: 0, // 0 = unbounded
	}
}

// WithCapacity sets the maximum number of entries.
// When a new key would exceed it, the least recently used entry is evicted first.
// Zero or a negative value means unbounded.
// Default: 0 (unbounded).
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = max(n, 0)
	}
}

// WithLogger sets the logger used for eviction and lifecycle events.
// Default: a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// withArenaLimit caps the number of list nodes the cache can address.
func withArenaLimit(n int) Option {
	return func(o *options) {
		o.arenaLimit = n
	}
}
