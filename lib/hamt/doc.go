// Package hamt implements a persistent hash map with string keys.
//
// The map is a hash array mapped trie in the compressed (CHAMP) layout: every trie node keeps
// two 32-bit bitmaps, one for slots that hold an inline key/value entry and one for slots that
// hold a child node. Entries and children live in two dense slices indexed by the popcount of
// the bitmap below the slot, so a node only allocates room for occupied slots. Each level
// consumes 5 bits of a 64-bit key hash. Keys whose full hashes are equal are stored in a
// collision node holding a short list.
//
// Every update (Set, Delete) copies the nodes on the path from the root to the touched slot
// and shares everything else with the previous version. A version is never modified after it
// was returned, so any number of versions can be read at the same time:
//
//	m0 := hamt.New[int](nil)
//	m1 := m0.Set("a", 1)
//	m2 := m1.Set("b", 2)
//	// m0 is empty, m1 holds a, m2 holds a and b
//
// Deletes keep the trie canonical: a sub node that is left with a single entry is inlined into
// its parent, so a map built by any sequence of operations has the same shape as one built
// directly from its final contents.
//
// The hash function is pluggable (Hasher). Murmur3Hasher is the default, FNVHasher is the
// cheaper alternative for short keys.
package hamt
