package lrucache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrArenaExhausted is returned by Put when the recency list cannot
	// address another node. The cache is left unchanged.
	ErrArenaExhausted = errors.New("lrucache: node arena exhausted")
)
