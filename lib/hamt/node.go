package hamt

import "math/bits"

const (
	bitsPerLevel = 5
	branchFactor = 1 << bitsPerLevel
	levelMask    = branchFactor - 1
	hashBits     = 64
)

// entry is a key/value pair together with the full hash of the key
type entry[V any] struct {
	hash  uint64
	key   string
	value V
}

// node is implemented by *bitmapNode and *collisionNode.
// Nodes are immutable once they are reachable from a Map.
type node[V any] interface {
	set(e entry[V], shift uint, equal func(a, b V) bool) (node[V], bool)
	delete(key string, hash uint64, shift uint) (node[V], bool)
	// single returns the only entry of a node without children
	single() (entry[V], bool)
}

// bitpos returns the bitmap bit of the slot the hash selects at the given shift
func bitpos(hash uint64, shift uint) uint32 {
	return 1 << ((hash >> shift) & levelMask)
}

// index returns the dense slice index of bit in bitmap
func index(bitmap, bit uint32) int {
	return bits.OnesCount32(bitmap & (bit - 1))
}

// --------------------------------------------------------------------------
// Bitmap Node
// --------------------------------------------------------------------------

type bitmapNode[V any] struct {
	datamap  uint32
	nodemap  uint32
	entries  []entry[V]
	children []node[V]
}

func (n *bitmapNode[V]) clone() *bitmapNode[V] {
	c := &bitmapNode[V]{datamap: n.datamap, nodemap: n.nodemap}
	if len(n.entries) > 0 {
		c.entries = make([]entry[V], len(n.entries))
		copy(c.entries, n.entries)
	}
	if len(n.children) > 0 {
		c.children = make([]node[V], len(n.children))
		copy(c.children, n.children)
	}
	return c
}

func (n *bitmapNode[V]) set(e entry[V], shift uint, equal func(a, b V) bool) (node[V], bool) {
	bit := bitpos(e.hash, shift)

	switch {
	case n.datamap&bit != 0:
		i := index(n.datamap, bit)
		cur := n.entries[i]
		if cur.hash == e.hash && cur.key == e.key {
			if equal != nil && equal(cur.value, e.value) {
				return n, false
			}
			c := n.clone()
			c.entries[i].value = e.value
			return c, false
		}

		// two entries share the slot, move both into a sub node
		child := mergeEntries(cur, e, shift+bitsPerLevel)
		return n.entryToChild(bit, i, child), true

	case n.nodemap&bit != 0:
		i := index(n.nodemap, bit)
		child, added := n.children[i].set(e, shift+bitsPerLevel, equal)
		if child == n.children[i] {
			return n, false
		}
		c := n.clone()
		c.children[i] = child
		return c, added

	default:
		i := index(n.datamap, bit)
		c := &bitmapNode[V]{
			datamap:  n.datamap | bit,
			nodemap:  n.nodemap,
			entries:  make([]entry[V], len(n.entries)+1),
			children: n.children,
		}
		copy(c.entries, n.entries[:i])
		c.entries[i] = e
		copy(c.entries[i+1:], n.entries[i:])
		return c, true
	}
}

func (n *bitmapNode[V]) delete(key string, hash uint64, shift uint) (node[V], bool) {
	bit := bitpos(hash, shift)

	switch {
	case n.datamap&bit != 0:
		i := index(n.datamap, bit)
		if cur := n.entries[i]; cur.hash != hash || cur.key != key {
			return n, false
		}
		c := &bitmapNode[V]{
			datamap:  n.datamap &^ bit,
			nodemap:  n.nodemap,
			entries:  make([]entry[V], len(n.entries)-1),
			children: n.children,
		}
		copy(c.entries, n.entries[:i])
		copy(c.entries[i:], n.entries[i+1:])
		return c, true

	case n.nodemap&bit != 0:
		i := index(n.nodemap, bit)
		child, removed := n.children[i].delete(key, hash, shift+bitsPerLevel)
		if !removed {
			return n, false
		}
		if e, ok := child.single(); ok {
			// inline the last entry of the sub node
			return n.childToEntry(bit, i, e), true
		}
		c := n.clone()
		c.children[i] = child
		return c, true

	default:
		return n, false
	}
}

func (n *bitmapNode[V]) single() (entry[V], bool) {
	if n.nodemap == 0 && len(n.entries) == 1 {
		return n.entries[0], true
	}
	return entry[V]{}, false
}

// entryToChild returns a copy of n where the entry at entry index i (slot bit) is replaced by child
func (n *bitmapNode[V]) entryToChild(bit uint32, i int, child node[V]) *bitmapNode[V] {
	c := &bitmapNode[V]{
		datamap:  n.datamap &^ bit,
		nodemap:  n.nodemap | bit,
		entries:  make([]entry[V], len(n.entries)-1),
		children: make([]node[V], len(n.children)+1),
	}
	copy(c.entries, n.entries[:i])
	copy(c.entries[i:], n.entries[i+1:])

	j := index(c.nodemap, bit)
	copy(c.children, n.children[:j])
	c.children[j] = child
	copy(c.children[j+1:], n.children[j:])
	return c
}

// childToEntry returns a copy of n where the child at child index i (slot bit) is replaced by e
func (n *bitmapNode[V]) childToEntry(bit uint32, i int, e entry[V]) *bitmapNode[V] {
	c := &bitmapNode[V]{
		datamap:  n.datamap | bit,
		nodemap:  n.nodemap &^ bit,
		entries:  make([]entry[V], len(n.entries)+1),
		children: make([]node[V], len(n.children)-1),
	}
	copy(c.children, n.children[:i])
	copy(c.children[i:], n.children[i+1:])

	j := index(c.datamap, bit)
	copy(c.entries, n.entries[:j])
	c.entries[j] = e
	copy(c.entries[j+1:], n.entries[j:])
	return c
}

// mergeEntries builds the smallest sub tree holding both entries, starting at the given shift
func mergeEntries[V any](a, b entry[V], shift uint) node[V] {
	if a.hash == b.hash || shift >= hashBits {
		return &collisionNode[V]{hash: a.hash, entries: []entry[V]{a, b}}
	}

	bitA, bitB := bitpos(a.hash, shift), bitpos(b.hash, shift)
	if bitA == bitB {
		return &bitmapNode[V]{
			nodemap:  bitA,
			children: []node[V]{mergeEntries(a, b, shift+bitsPerLevel)},
		}
	}

	if bitA > bitB {
		a, b = b, a
	}
	return &bitmapNode[V]{
		datamap: bitA | bitB,
		entries: []entry[V]{a, b},
	}
}

// --------------------------------------------------------------------------
// Collision Node
// --------------------------------------------------------------------------

// collisionNode holds entries whose keys have identical 64-bit hashes
type collisionNode[V any] struct {
	hash    uint64
	entries []entry[V]
}

func (n *collisionNode[V]) get(key string) (V, bool) {
	for i := range n.entries {
		if n.entries[i].key == key {
			return n.entries[i].value, true
		}
	}
	var zero V
	return zero, false
}

func (n *collisionNode[V]) set(e entry[V], shift uint, equal func(a, b V) bool) (node[V], bool) {
	if e.hash != n.hash {
		// the new key only shares a prefix, split below a fresh bitmap node
		parent := &bitmapNode[V]{
			nodemap:  bitpos(n.hash, shift),
			children: []node[V]{n},
		}
		return parent.set(e, shift, equal)
	}

	for i := range n.entries {
		if n.entries[i].key != e.key {
			continue
		}
		if equal != nil && equal(n.entries[i].value, e.value) {
			return n, false
		}
		c := &collisionNode[V]{hash: n.hash, entries: make([]entry[V], len(n.entries))}
		copy(c.entries, n.entries)
		c.entries[i].value = e.value
		return c, false
	}

	c := &collisionNode[V]{hash: n.hash, entries: make([]entry[V], len(n.entries), len(n.entries)+1)}
	copy(c.entries, n.entries)
	c.entries = append(c.entries, e)
	return c, true
}

func (n *collisionNode[V]) delete(key string, hash uint64, _ uint) (node[V], bool) {
	if hash != n.hash {
		return n, false
	}
	for i := range n.entries {
		if n.entries[i].key != key {
			continue
		}
		c := &collisionNode[V]{hash: n.hash, entries: make([]entry[V], 0, len(n.entries)-1)}
		c.entries = append(c.entries, n.entries[:i]...)
		c.entries = append(c.entries, n.entries[i+1:]...)
		return c, true
	}
	return n, false
}

func (n *collisionNode[V]) single() (entry[V], bool) {
	if len(n.entries) == 1 {
		return n.entries[0], true
	}
	return entry[V]{}, false
}
