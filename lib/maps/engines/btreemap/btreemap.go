// Package btreemap adapts google/btree to the maps.Adapter interface.
//
// The b-tree is used as a snapshot table: records are inserted into a private tree, the view
// holds a Clone of it. Clones share nodes copy-on-write, so BuildVersions can keep one clone
// per insert while continuing to fill the original tree.
package btreemap

import (
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/workload"
	"github.com/google/btree"
)

// DefaultDegree is the node degree used when none is configured
const DefaultDegree = 32

type item struct {
	key   string
	value int32
}

func less(a, b item) bool {
	return a.key < b.key
}

type adapter struct {
	degree int
}

// New returns a b-tree adapter with the given degree (DefaultDegree if < 2)
func New(degree int) maps.Versioned {
	if degree < 2 {
		degree = DefaultDegree
	}
	return adapter{degree: degree}
}

func (a adapter) Info() maps.Info {
	return maps.Info{
		Kind:     maps.KindBTree,
		Model:    maps.ModelSnapshot,
		Library:  "github.com/google/btree BTreeG",
		Metadata: map[string]int{"degree": a.degree},
	}
}

func (a adapter) Build(records []workload.Record) maps.View {
	tree := btree.NewG[item](a.degree, less)
	for _, r := range records {
		tree.ReplaceOrInsert(item{key: r.Key, value: r.Value})
	}
	return &view{tree: tree.Clone()}
}

func (a adapter) BuildVersions(records []workload.Record) []maps.View {
	tree := btree.NewG[item](a.degree, less)
	versions := make([]maps.View, 0, len(records)+1)
	versions = append(versions, &view{tree: tree.Clone()})

	for _, r := range records {
		tree.ReplaceOrInsert(item{key: r.Key, value: r.Value})
		versions = append(versions, &view{tree: tree.Clone()})
	}
	return versions
}

type view struct {
	tree *btree.BTreeG[item]
}

func (v *view) Get(key string) (int32, bool) {
	found, ok := v.tree.Get(item{key: key})
	return found.value, ok
}

func (v *view) Probe(keys []string) int64 {
	var sum int64
	for _, k := range keys {
		if found, ok := v.tree.Get(item{key: k}); ok {
			sum += int64(found.value)
		}
	}
	return sum
}

func (v *view) Len() int {
	return v.tree.Len()
}
