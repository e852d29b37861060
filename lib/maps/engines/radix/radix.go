// Package radix adapts hashicorp's immutable radix tree to the maps.Adapter interface.
//
// The tree is a snapshot table: Build fills it through a single transaction and commits once,
// the committed tree is never modified again. BuildVersions commits after every record so each
// version shares all untouched nodes with its predecessor.
package radix

import (
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/util"
	"github.com/ValentinKolb/mapbench/lib/workload"
	iradix "github.com/hashicorp/go-immutable-radix/v2"
)

type adapter struct{}

// New returns the immutable radix tree adapter
func New() maps.Versioned {
	return adapter{}
}

func (adapter) Info() maps.Info {
	return maps.Info{
		Kind:    maps.KindIradix,
		Model:   maps.ModelSnapshot,
		Library: "github.com/hashicorp/go-immutable-radix/v2 Tree",
	}
}

func (adapter) Build(records []workload.Record) maps.View {
	txn := iradix.New[int32]().Txn()
	for _, r := range records {
		txn.Insert([]byte(r.Key), r.Value)
	}
	return &view{tree: txn.Commit()}
}

func (adapter) BuildVersions(records []workload.Record) []maps.View {
	tree := iradix.New[int32]()
	versions := make([]maps.View, 0, len(records)+1)
	versions = append(versions, &view{tree: tree})

	for _, r := range records {
		tree, _, _ = tree.Insert([]byte(r.Key), r.Value)
		versions = append(versions, &view{tree: tree})
	}
	return versions
}

type view struct {
	tree *iradix.Tree[int32]
}

func (v *view) Get(key string) (int32, bool) {
	return v.tree.Get(util.StringBytes(key))
}

func (v *view) Probe(keys []string) int64 {
	root := v.tree.Root()

	var sum int64
	for _, k := range keys {
		if value, ok := root.Get(util.StringBytes(k)); ok {
			sum += int64(value)
		}
	}
	return sum
}

func (v *view) Len() int {
	return v.tree.Len()
}
