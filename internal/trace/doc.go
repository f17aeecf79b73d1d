// Package trace replays YAML scenarios of cache operations.
//
// A scenario names keys and values with plain strings. During replay every
// distinct name is interned to its own *Token, so the cache is driven with
// identity keys exactly as a host library would drive it with pointers:
//
//	name: recency
//	capacity: 0
//	steps:
//	  - {op: put, key: A, value: X}
//	  - {op: get, key: A, expect: {value: X, back: A}}
//	  - {op: check, expect: {size: 1, keys: [A]}}
//
// Supported operations are put, get, peek, remove, resize, free and check.
// Expectations are verified after the operation; [Run] stops at the first
// mismatch and returns a [*MismatchError].
package trace
