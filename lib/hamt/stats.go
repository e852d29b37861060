package hamt

import (
	"math/bits"

	"github.com/ValentinKolb/mapbench/lib/util"
)

// Stats describes the shape of a trie
type Stats struct {
	Keys           int                    `json:"keys" yaml:"keys"`
	BitmapNodes    int                    `json:"bitmap_nodes" yaml:"bitmap_nodes"`
	CollisionNodes int                    `json:"collision_nodes" yaml:"collision_nodes"`
	MaxDepth       int                    `json:"max_depth" yaml:"max_depth"`
	Branching      util.DistributionStats `json:"branching" yaml:"branching"`
}

// Stats walks the trie and reports node counts, the deepest level and how evenly the
// occupied slots are distributed over the bitmap nodes
func (m *Map[V]) Stats() Stats {
	var s Stats
	var fanout []float64

	var visit func(n node[V], depth int)
	visit = func(n node[V], depth int) {
		s.MaxDepth = max(s.MaxDepth, depth)

		switch n := n.(type) {
		case *bitmapNode[V]:
			s.BitmapNodes++
			s.Keys += len(n.entries)
			fanout = append(fanout, float64(bits.OnesCount32(n.datamap|n.nodemap)))
			for _, child := range n.children {
				visit(child, depth+1)
			}
		case *collisionNode[V]:
			s.CollisionNodes++
			s.Keys += len(n.entries)
		}
	}
	visit(m.root, 0)

	s.Branching = util.NewDistributionStats(fanout)
	return s
}
