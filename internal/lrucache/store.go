package lrucache

// entry is the stored association for one key.
type entry[V any] struct {
	value V
	node  handle // position of the key in the recency list
}

// entryStore maps key identity to entries. It never touches ordering.
type entryStore[K comparable, V any] struct {
	items map[K]*entry[V] // nil while the store is empty after clear
}

// insertOrGet returns the entry for key, creating it when absent.
// The second result reports whether the entry was created.
func (s *entryStore[K, V]) insertOrGet(key K) (*entry[V], bool) {
	if e, ok := s.items[key]; ok {
		return e, false
	}
	if s.items == nil {
		s.items = make(map[K]*entry[V])
	}
	e := &entry[V]{}
	s.items[key] = e
	return e, true
}

func (s *entryStore[K, V]) lookup(key K) (*entry[V], bool) {
	e, ok := s.items[key]
	return e, ok
}

// remove deletes the entry for key. Missing keys are ignored.
func (s *entryStore[K, V]) remove(key K) {
	delete(s.items, key)
}

func (s *entryStore[K, V]) clear() {
	s.items = nil
}

func (s *entryStore[K, V]) len() int {
	return len(s.items)
}
