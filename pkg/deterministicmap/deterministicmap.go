// Package deterministicmap provides a map whose iteration order is stable across executions,
// which state machine code needs wherever a native map would be ranged over.
package deterministicmap

import (
	"cmp"
	"slices"
)

// Map is a map iterated in ascending key order. Keys are sorted lazily on first iteration
// after an insertion. The zero value is ready to use.
type Map[K cmp.Ordered, V any] struct {
	data   map[K]V
	keys   []K
	sorted bool
}

// New creates an empty Map.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{
		data:   make(map[K]V),
		sorted: true,
	}
}

func (m *Map[K, V]) init() {
	if m.data == nil {
		m.data = make(map[K]V)
		m.sorted = true
	}
}

// Set inserts or replaces the value of key.
func (m *Map[K, V]) Set(key K, value V) {
	m.init()
	if _, exists := m.data[key]; !exists {
		m.keys = append(m.keys, key)
		m.sorted = false
	}
	m.data[key] = value
}

// Upsert stores fn(current, found) under key. It is the accumulate-in-place primitive:
// fn receives the zero value and false for a new key.
func (m *Map[K, V]) Upsert(key K, fn func(current V, found bool) V) {
	current, found := m.Get(key)
	m.Set(key, fn(current, found))
}

// Get returns the value of key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

func (m *Map[K, V]) sort() {
	if m.sorted {
		return
	}
	slices.Sort(m.keys)
	m.sorted = true
}

// Keys returns a copy of the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	m.sort()
	return slices.Clone(m.keys)
}

// RangeErr calls fn for every entry in ascending key order, stopping at the first error.
func (m *Map[K, V]) RangeErr(fn func(key K, value V) error) error {
	m.sort()
	for _, k := range m.keys {
		if err := fn(k, m.data[k]); err != nil {
			return err
		}
	}
	return nil
}
