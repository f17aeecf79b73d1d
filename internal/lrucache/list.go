package lrucache

import (
	"iter"
	"math"
)

// handle addresses a node in the recency list arena.
// The zero handle is the root sentinel and never refers to a key.
type handle int32

const root handle = 0

// node is one slot of the arena. Free slots are chained through next.
type node[K comparable] struct {
	key  K
	prev handle
	next handle
}

// recencyList is a circular doubly linked list of keys stored in a slice
// arena and linked by index. The front holds the least recently used key,
// the back the most recently used one.
//
// Removed slots are pushed onto a free chain and reused by pushBack, so
// moveToBack and remove never allocate.
type recencyList[K comparable] struct {
	nodes []node[K] // nodes[0] is the sentinel; nil while the list is cleared
	free  handle    // head of the free chain, root when empty
	size  int
	limit int // maximum number of addressable key slots
}

func newRecencyList[K comparable]() recencyList[K] {
	return recencyList[K]{limit: math.MaxInt32}
}

// pushBack appends key at the tail and returns its handle.
// Returns ErrArenaExhausted, without touching the list, when neither a free
// slot nor a new addressable slot is available.
func (l *recencyList[K]) pushBack(key K) (handle, error) {
	var h handle
	switch {
	case l.free != root:
		h = l.free
		l.free = l.nodes[h].next
	case l.slots() >= l.limit:
		return root, ErrArenaExhausted
	default:
		if l.nodes == nil {
			l.nodes = make([]node[K], 1, 8)
		}
		l.nodes = append(l.nodes, node[K]{})
		h = handle(len(l.nodes) - 1)
	}

	l.nodes[h] = node[K]{key: key}
	l.linkBack(h)
	l.size++
	return h, nil
}

// moveToBack marks the node at h as most recently used.
func (l *recencyList[K]) moveToBack(h handle) {
	if l.nodes[root].prev == h {
		return
	}
	l.unlink(h)
	l.linkBack(h)
}

// remove detaches the node at h and returns its key.
func (l *recencyList[K]) remove(h handle) K {
	l.unlink(h)
	key := l.nodes[h].key
	l.nodes[h] = node[K]{next: l.free}
	l.free = h
	l.size--
	return key
}

func (l *recencyList[K]) front() (K, bool) {
	if l.size == 0 {
		var zero K
		return zero, false
	}
	return l.nodes[l.nodes[root].next].key, true
}

func (l *recencyList[K]) back() (K, bool) {
	if l.size == 0 {
		var zero K
		return zero, false
	}
	return l.nodes[l.nodes[root].prev].key, true
}

// frontHandle returns the handle of the least recently used node.
func (l *recencyList[K]) frontHandle() (handle, bool) {
	if l.size == 0 {
		return root, false
	}
	return l.nodes[root].next, true
}

func (l *recencyList[K]) isEmpty() bool { return l.size == 0 }

func (l *recencyList[K]) len() int { return l.size }

// clear releases the whole arena.
func (l *recencyList[K]) clear() {
	l.nodes = nil
	l.free = root
	l.size = 0
}

// all yields keys from least to most recently used.
func (l *recencyList[K]) all() iter.Seq[K] {
	return func(yield func(K) bool) {
		if l.size == 0 {
			return
		}
		for h := l.nodes[root].next; h != root; h = l.nodes[h].next {
			if !yield(l.nodes[h].key) {
				return
			}
		}
	}
}

// slots reports how many key slots the arena currently holds.
func (l *recencyList[K]) slots() int {
	if len(l.nodes) == 0 {
		return 0
	}
	return len(l.nodes) - 1
}

func (l *recencyList[K]) linkBack(h handle) {
	tail := l.nodes[root].prev
	l.nodes[h].prev = tail
	l.nodes[h].next = root
	l.nodes[tail].next = h
	l.nodes[root].prev = h
}

func (l *recencyList[K]) unlink(h handle) {
	prev, next := l.nodes[h].prev, l.nodes[h].next
	l.nodes[prev].next = next
	l.nodes[next].prev = prev
}
