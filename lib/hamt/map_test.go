package hamt

import (
	"strconv"
	"testing"
)

// lowEntropy maps keys onto 16 hash values so collision nodes and deep splits are common
var lowEntropy = HasherFunc(func(key string) uint64 {
	n, _ := strconv.Atoi(key)
	return uint64(n%16) << 58
})

func buildMap(n int, hasher Hasher) *Map[int] {
	m := New[int](hasher)
	for i := 0; i < n; i++ {
		m = m.Set(strconv.Itoa(i), i)
	}
	return m
}

func keysOf[V any](m *Map[V]) []string {
	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// TestNew tests that a new map is empty
func TestNew(t *testing.T) {
	m := New[int](nil)

	if m.Len() != 0 {
		t.Errorf("New map should be empty, but has length %d", m.Len())
	}
	if _, ok := m.Get("a"); ok {
		t.Error("Get on empty map should return ok=false")
	}
	if keys := keysOf(m); len(keys) != 0 {
		t.Errorf("Empty map should not yield keys, got %v", keys)
	}
}

// TestSetGet tests inserting and reading keys
func TestSetGet(t *testing.T) {
	for _, tc := range []struct {
		name   string
		hasher Hasher
	}{
		{"Murmur3", Murmur3Hasher(0)},
		{"FNV", FNVHasher(0)},
		{"LowEntropy", lowEntropy},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := buildMap(1000, tc.hasher)

			if m.Len() != 1000 {
				t.Fatalf("Expected length 1000, got %d", m.Len())
			}
			for i := 0; i < 1000; i++ {
				v, ok := m.Get(strconv.Itoa(i))
				if !ok {
					t.Fatalf("Key %d should exist", i)
				}
				if v != i {
					t.Errorf("Key %d: expected value %d, got %d", i, i, v)
				}
			}
			if _, ok := m.Get("1000"); ok {
				t.Error("Key 1000 should not exist")
			}
			if _, ok := m.Get(""); ok {
				t.Error("Empty key should not exist")
			}
		})
	}
}

// TestSetOverwrite tests that overwriting a key keeps the length and replaces the value
func TestSetOverwrite(t *testing.T) {
	m1 := buildMap(100, nil)
	m2 := m1.Set("42", -1)

	if m2.Len() != 100 {
		t.Errorf("Expected length 100 after overwrite, got %d", m2.Len())
	}
	if v, _ := m2.Get("42"); v != -1 {
		t.Errorf("Expected overwritten value -1, got %d", v)
	}
	if v, _ := m1.Get("42"); v != 42 {
		t.Errorf("Previous version should still hold 42, got %d", v)
	}
}

// TestSetEqualValue tests that storing an equal value returns the receiver for comparable maps
func TestSetEqualValue(t *testing.T) {
	m := NewComparable[int](nil).Set("a", 1).Set("b", 2)
	if m.Set("a", 1) != m {
		t.Error("Set with an equal value should return the receiver")
	}
	if m.Set("a", 3) == m {
		t.Error("Set with a different value should return a new version")
	}

	// without value equality every Set is a new version
	n := New[int](nil).Set("a", 1)
	if n.Set("a", 1) == n {
		t.Error("Set on a map created with New should return a new version")
	}
}

// TestEmptyKey tests that the empty string is a regular key
func TestEmptyKey(t *testing.T) {
	m := New[string](nil).Set("", "empty")

	v, ok := m.Get("")
	if !ok || v != "empty" {
		t.Errorf("Expected (empty, true), got (%q, %v)", v, ok)
	}
	if m = m.Delete(""); m.Len() != 0 {
		t.Errorf("Expected empty map after delete, got length %d", m.Len())
	}
}

// TestPersistence tests that every intermediate version keeps exactly its own keys
func TestPersistence(t *testing.T) {
	versions := []*Map[int]{New[int](nil)}
	for i := 0; i < 200; i++ {
		versions = append(versions, versions[i].Set(strconv.Itoa(i), i))
	}

	for n, m := range versions {
		if m.Len() != n {
			t.Fatalf("Version %d: expected length %d, got %d", n, n, m.Len())
		}
		for i := 0; i < 200; i++ {
			_, ok := m.Get(strconv.Itoa(i))
			if ok != (i < n) {
				t.Fatalf("Version %d: key %d present=%v", n, i, ok)
			}
		}
	}
}

// TestDelete tests removing keys
func TestDelete(t *testing.T) {
	for _, tc := range []struct {
		name   string
		hasher Hasher
	}{
		{"Murmur3", nil},
		{"LowEntropy", lowEntropy},
	} {
		t.Run(tc.name, func(t *testing.T) {
			full := buildMap(500, tc.hasher)

			if full.Delete("missing") != full {
				t.Error("Delete of a missing key should return the receiver")
			}

			m := full
			for i := 0; i < 500; i += 2 {
				m = m.Delete(strconv.Itoa(i))
			}
			if m.Len() != 250 {
				t.Fatalf("Expected length 250, got %d", m.Len())
			}
			for i := 0; i < 500; i++ {
				_, ok := m.Get(strconv.Itoa(i))
				if ok != (i%2 == 1) {
					t.Errorf("Key %d present=%v after deleting even keys", i, ok)
				}
			}
			if full.Len() != 500 {
				t.Errorf("Previous version should keep 500 keys, has %d", full.Len())
			}

			for i := 1; i < 500; i += 2 {
				m = m.Delete(strconv.Itoa(i))
			}
			if m.Len() != 0 {
				t.Errorf("Expected empty map, got length %d", m.Len())
			}
			if len(m.root.entries) != 0 || len(m.root.children) != 0 || m.root.datamap != 0 || m.root.nodemap != 0 {
				t.Error("Root of an empty map should have no slots")
			}
		})
	}
}

// TestCanonicalShape tests that deletes collapse the trie to the shape of a direct build
func TestCanonicalShape(t *testing.T) {
	for _, hasher := range []Hasher{nil, lowEntropy} {
		direct := New[int](hasher)
		for i := 0; i < 300; i += 3 {
			direct = direct.Set(strconv.Itoa(i), i)
		}

		m := buildMap(300, hasher)
		for i := 0; i < 300; i++ {
			if i%3 != 0 {
				m = m.Delete(strconv.Itoa(i))
			}
		}

		if m.Stats() != direct.Stats() {
			t.Errorf("Expected stats %+v, got %+v", direct.Stats(), m.Stats())
		}
		a, b := keysOf(direct), keysOf(m)
		if len(a) != len(b) {
			t.Fatalf("Expected %d keys, got %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("Iteration order differs at %d: %q vs %q", i, a[i], b[i])
			}
		}
	}
}

// TestFullCollision tests keys that all share one hash
func TestFullCollision(t *testing.T) {
	constant := HasherFunc(func(string) uint64 { return 42 })
	m := buildMap(100, constant)

	if m.Len() != 100 {
		t.Fatalf("Expected length 100, got %d", m.Len())
	}
	for i := 0; i < 100; i++ {
		if v, ok := m.Get(strconv.Itoa(i)); !ok || v != i {
			t.Errorf("Key %d: expected (%d, true), got (%d, %v)", i, i, v, ok)
		}
	}

	stats := m.Stats()
	if stats.CollisionNodes != 1 || stats.Keys != 100 {
		t.Errorf("Expected one collision node with 100 keys, got %+v", stats)
	}

	for i := 1; i < 100; i++ {
		m = m.Delete(strconv.Itoa(i))
	}
	if stats = m.Stats(); stats.CollisionNodes != 0 || len(m.root.entries) != 1 {
		t.Errorf("Last colliding key should be inlined into the root, got %+v", stats)
	}
	if v, ok := m.Get("0"); !ok || v != 0 {
		t.Errorf("Expected key 0 to remain, got (%d, %v)", v, ok)
	}
}

// TestAllEarlyStop tests that iteration stops when the consumer breaks
func TestAllEarlyStop(t *testing.T) {
	m := buildMap(100, lowEntropy)

	count := 0
	for range m.All() {
		count++
		if count == 10 {
			break
		}
	}
	if count != 10 {
		t.Errorf("Expected to stop after 10 keys, got %d", count)
	}

	seen := make(map[string]int)
	for k, v := range m.All() {
		seen[k] = v
	}
	if len(seen) != 100 {
		t.Errorf("Expected 100 distinct keys, got %d", len(seen))
	}
}

// TestStats tests the reported shape of a populated trie
func TestStats(t *testing.T) {
	stats := buildMap(1000, nil).Stats()

	if stats.Keys != 1000 {
		t.Errorf("Expected 1000 keys, got %d", stats.Keys)
	}
	if stats.BitmapNodes < 2 || stats.MaxDepth < 1 {
		t.Errorf("Expected a multi level trie, got %+v", stats)
	}
	if stats.Branching.Mean <= 1 || stats.Branching.Max > branchFactor {
		t.Errorf("Unexpected branching %+v", stats.Branching)
	}
}

// --------------------------------------------------------------------------
// Node internals
// --------------------------------------------------------------------------

// TestMergeEntries tests the sub tree built for two entries sharing a slot
func TestMergeEntries(t *testing.T) {
	t.Run("NoConflict", func(t *testing.T) {
		a := entry[int]{hash: 2, key: "a"}
		b := entry[int]{hash: 4, key: "b"}

		for _, n := range []node[int]{mergeEntries(a, b, 0), mergeEntries(b, a, 0)} {
			bn := n.(*bitmapNode[int])
			if bn.datamap != 0x14 || bn.nodemap != 0 {
				t.Errorf("Expected datamap 0x14, got %#x (nodemap %#x)", bn.datamap, bn.nodemap)
			}
			if bn.entries[0].key != "a" || bn.entries[1].key != "b" {
				t.Errorf("Entries should be ordered by slot, got %q, %q", bn.entries[0].key, bn.entries[1].key)
			}
		}
	})

	t.Run("Conflict", func(t *testing.T) {
		a := entry[int]{hash: 2<<bitsPerLevel | 1, key: "a"}
		b := entry[int]{hash: 4<<bitsPerLevel | 1, key: "b"}

		bn := mergeEntries(a, b, 0).(*bitmapNode[int])
		if bn.nodemap != 0x2 || bn.datamap != 0 {
			t.Fatalf("Expected nodemap 0x2, got %#x (datamap %#x)", bn.nodemap, bn.datamap)
		}
		child := bn.children[0].(*bitmapNode[int])
		if child.datamap != 0x14 {
			t.Errorf("Expected child datamap 0x14, got %#x", child.datamap)
		}
	})

	t.Run("SameHash", func(t *testing.T) {
		a := entry[int]{hash: 7, key: "a"}
		b := entry[int]{hash: 7, key: "b"}

		if _, ok := mergeEntries(a, b, 0).(*collisionNode[int]); !ok {
			t.Error("Entries with equal hashes should end up in a collision node")
		}
	})
}

// TestCollisionSplit tests inserting a key next to a collision node that only shares a prefix
func TestCollisionSplit(t *testing.T) {
	hashes := map[string]uint64{"a": 1, "b": 1, "c": 1 | 1<<bitsPerLevel}
	m := New[int](HasherFunc(func(k string) uint64 { return hashes[k] }))
	m = m.Set("a", 1).Set("b", 2).Set("c", 3)

	for k, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if v, ok := m.Get(k); !ok || v != want {
			t.Errorf("Key %s: expected (%d, true), got (%d, %v)", k, want, v, ok)
		}
	}
	if stats := m.Stats(); stats.CollisionNodes != 1 || stats.BitmapNodes != 2 {
		t.Errorf("Expected a split below the root, got %+v", stats)
	}
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

func BenchmarkSet(b *testing.B) {
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m := New[int](nil)
		for j, k := range keys {
			m = m.Set(k, j)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	m := buildMap(1000, nil)
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Get(keys[i%len(keys)])
	}
}
