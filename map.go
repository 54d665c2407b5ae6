package bencode

import (
	"bytes"
	"sort"
)

// Entry is one key/value pair of a [Map].
type Entry[V any] struct {
	Key   Bytes
	Value V
}

// Map is bencode's dictionary: an ordered sequence of byte-string-keyed
// entries, not a hash map. Bencode dictionaries are grammatically required
// to be byte-wise sorted by key, but this package never sorts on your
// behalf during decode or encode - parsed input keeps the order it was
// found in, and [Map.Canonicalize] is the one explicit place sorting
// happens. Grounded on the reference Map<K, V> (a Vec<(K, V)> with an
// explicit ensure_order method).
type Map[V any] struct {
	entries []Entry[V]
}

// NewMap returns an empty Map.
func NewMap[V any]() Map[V] {
	return Map[V]{}
}

// NewMapWithCapacity returns an empty Map with room for capacity entries
// without reallocating.
func NewMapWithCapacity[V any](capacity int) Map[V] {
	return Map[V]{entries: make([]Entry[V], 0, capacity)}
}

// MapFromRaw wraps an existing entry slice as a Map without copying it.
// The caller is responsible for any ordering guarantees it needs.
func MapFromRaw[V any](entries []Entry[V]) Map[V] {
	return Map[V]{entries: entries}
}

// Len returns the number of entries.
func (m Map[V]) Len() int { return len(m.entries) }

// Insert appends a new key/value entry. It does not check for, or replace,
// an existing entry with the same key - that mirrors the reference Map,
// which is an append-only Vec until Canonicalize is called.
func (m *Map[V]) Insert(key Bytes, value V) {
	m.entries = append(m.entries, Entry[V]{Key: key, Value: value})
}

// Get returns the value of the first entry with the given key.
func (m Map[V]) Get(key Bytes) (V, bool) {
	for _, e := range m.entries {
		if bytes.Equal(e.Key, key) {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Canonicalize sorts entries byte-wise by key, as BEP 3 requires for wire
// output. It is never called implicitly by Encode or Marshal.
func (m *Map[V]) Canonicalize() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		return bytes.Compare(m.entries[i].Key, m.entries[j].Key) < 0
	})
}

// Entries returns the Map's entries in their current order. The returned
// slice aliases the Map's backing array; callers must not mutate it.
func (m Map[V]) Entries() []Entry[V] { return m.entries }

// Iter calls fn for each entry in order, stopping early if fn returns false.
func (m Map[V]) Iter(fn func(key Bytes, value V) bool) {
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}
