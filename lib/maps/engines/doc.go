// Package engines constructs the map adapters measured by mapbench.
//
// Each engine lives in its own sub package and implements maps.Adapter (snapshot and
// persistent engines also implement maps.Versioned):
//
//   - gomap: Go's built-in map, the mutable baseline
//   - xsyncmap: xsync.MapOf, a mutable concurrent hash table
//   - radix: hashicorp's immutable radix tree, built in one transaction (snapshot)
//   - btreemap: google/btree with copy-on-write clones (snapshot)
//   - hamtmap: the in-repo persistent hash trie from lib/hamt (persistent)
//   - immutablemap: benbjohnson/immutable's persistent hash map (persistent)
//
// New maps a maps.Kind plus Options to the matching adapter.
package engines
