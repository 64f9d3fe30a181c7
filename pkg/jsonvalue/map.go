package jsonvalue

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is a JSON object: unique string keys kept in insertion order.
type Map struct {
	om *orderedmap.OrderedMap[string, Value]
}

// NewMap creates an empty object.
func NewMap() *Map {
	return &Map{om: orderedmap.New[string, Value]()}
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key string, value Value) {
	m.om.Set(key, value)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	return m.om.Get(key)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of members.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.om.Len()
}

// LastKey returns the most recently inserted key.
func (m *Map) LastKey() (string, bool) {
	if m == nil {
		return "", false
	}
	pair := m.om.Newest()
	if pair == nil {
		return "", false
	}
	return pair.Key, true
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls fn for each member in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, value Value) bool) {
	if m == nil {
		return
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Merge copies every member of other into m.
func (m *Map) Merge(other *Map) {
	other.Range(func(key string, value Value) bool {
		m.Set(key, value)
		return true
	})
}
