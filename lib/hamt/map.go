package hamt

import (
	"iter"
)

// Map is a persistent hash map with string keys.
// The zero value is not usable, create maps with New or NewComparable.
type Map[V any] struct {
	root   *bitmapNode[V]
	size   int
	hasher Hasher
	equal  func(a, b V) bool
}

// New returns an empty map using the given hasher (Murmur3Hasher(0) if nil).
// Every Set produces a new version, even when the stored value does not change.
func New[V any](hasher Hasher) *Map[V] {
	if hasher == nil {
		hasher = Murmur3Hasher(0)
	}
	return &Map[V]{
		root:   &bitmapNode[V]{},
		hasher: hasher,
	}
}

// NewComparable is like New, but Set returns the receiver when the key already maps to an equal value
func NewComparable[V comparable](hasher Hasher) *Map[V] {
	m := New[V](hasher)
	m.equal = func(a, b V) bool { return a == b }
	return m
}

// Len returns the number of keys in the map
func (m *Map[V]) Len() int {
	return m.size
}

// Get returns the value stored for key
func (m *Map[V]) Get(key string) (V, bool) {
	hash := m.hasher.Hash(key)
	n := m.root
	shift := uint(0)

	for {
		bit := bitpos(hash, shift)

		if n.datamap&bit != 0 {
			e := &n.entries[index(n.datamap, bit)]
			if e.hash == hash && e.key == key {
				return e.value, true
			}
			break
		}
		if n.nodemap&bit == 0 {
			break
		}

		switch child := n.children[index(n.nodemap, bit)].(type) {
		case *bitmapNode[V]:
			n = child
			shift += bitsPerLevel
		case *collisionNode[V]:
			if child.hash != hash {
				var zero V
				return zero, false
			}
			return child.get(key)
		}
	}

	var zero V
	return zero, false
}

// Set returns a new version of the map where key maps to value.
// The receiver is not modified.
func (m *Map[V]) Set(key string, value V) *Map[V] {
	e := entry[V]{hash: m.hasher.Hash(key), key: key, value: value}
	root, added := m.root.set(e, 0, m.equal)
	if root == node[V](m.root) {
		return m
	}

	next := m.with(root.(*bitmapNode[V]))
	if added {
		next.size++
	}
	return next
}

// Delete returns a new version of the map without key.
// If the key is not present the receiver itself is returned.
func (m *Map[V]) Delete(key string) *Map[V] {
	root, removed := m.root.delete(key, m.hasher.Hash(key), 0)
	if !removed {
		return m
	}

	next := m.with(root.(*bitmapNode[V]))
	next.size--
	return next
}

// All iterates over all key/value pairs. The order is fixed for a given set of keys and hasher.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		walk[V](m.root, yield)
	}
}

func (m *Map[V]) with(root *bitmapNode[V]) *Map[V] {
	return &Map[V]{
		root:   root,
		size:   m.size,
		hasher: m.hasher,
		equal:  m.equal,
	}
}

func walk[V any](n node[V], yield func(string, V) bool) bool {
	switch n := n.(type) {
	case *bitmapNode[V]:
		for _, e := range n.entries {
			if !yield(e.key, e.value) {
				return false
			}
		}
		for _, child := range n.children {
			if !walk(child, yield) {
				return false
			}
		}
	case *collisionNode[V]:
		for _, e := range n.entries {
			if !yield(e.key, e.value) {
				return false
			}
		}
	}
	return true
}
