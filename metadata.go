package ggcontainer

import "sort"

// Metadata holds the key/value entries of a container. Wire order
// (insertion order, as parsed or as built by a Writer caller) and
// sorted order are both meaningful: the wire order is what a Reader
// replays back unmodified on re-serialization, while Sorted exposes a
// deterministic view for presentation (CLI "inspect" output)
// independent of how the file happened to be authored.
type Metadata struct {
	keys   []string
	values map[string]TypedValue
}

// NewMetadata returns an empty Metadata container.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]TypedValue)}
}

// Set inserts or replaces the value for key. Replacing an existing key
// keeps its original wire position rather than moving it to the end,
// matching how a Reader would never need to re-home an entry it has
// already placed.
func (m *Metadata) Set(key string, v TypedValue) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value for key and whether it was present.
func (m *Metadata) Get(key string) (TypedValue, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present.
func (m *Metadata) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Metadata) Len() int { return len(m.keys) }

// Keys returns the keys in wire (insertion) order.
func (m *Metadata) Keys() []string {
	cp := make([]string, len(m.keys))
	copy(cp, m.keys)
	return cp
}

// Sorted returns the keys in lexicographic order, for deterministic
// presentation.
func (m *Metadata) Sorted() []string {
	cp := m.Keys()
	sort.Strings(cp)
	return cp
}

// Range calls fn for each entry in wire order, stopping early if fn
// returns false.
func (m *Metadata) Range(fn func(key string, v TypedValue) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
