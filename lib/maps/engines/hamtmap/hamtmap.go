// Package hamtmap adapts the in-repo persistent hash trie (lib/hamt) to the maps.Adapter
// interface. Every insert produces a new version of the map; Build keeps the last one.
package hamtmap

import (
	"github.com/ValentinKolb/mapbench/lib/hamt"
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/workload"
)

type adapter struct {
	hasher     hamt.Hasher
	hasherName string
}

// New returns a hamt adapter using the given hasher. An empty name defaults to murmur3.
func New(hasher hamt.Hasher, hasherName string) maps.Versioned {
	if hasher == nil {
		hasher, hasherName = hamt.Murmur3Hasher(0), "murmur3"
	}
	return adapter{hasher: hasher, hasherName: hasherName}
}

func (a adapter) Info() maps.Info {
	return maps.Info{
		Kind:     maps.KindHAMT,
		Model:    maps.ModelPersistent,
		Library:  "lib/hamt",
		Metadata: map[string]string{"hasher": a.hasherName},
	}
}

func (a adapter) Build(records []workload.Record) maps.View {
	m := hamt.NewComparable[int32](a.hasher)
	for _, r := range records {
		m = m.Set(r.Key, r.Value)
	}
	return &view{m: m}
}

func (a adapter) BuildVersions(records []workload.Record) []maps.View {
	m := hamt.NewComparable[int32](a.hasher)
	versions := make([]maps.View, 0, len(records)+1)
	versions = append(versions, &view{m: m})

	for _, r := range records {
		m = m.Set(r.Key, r.Value)
		versions = append(versions, &view{m: m})
	}
	return versions
}

type view struct {
	m *hamt.Map[int32]
}

func (v *view) Get(key string) (int32, bool) {
	return v.m.Get(key)
}

func (v *view) Probe(keys []string) int64 {
	var sum int64
	for _, k := range keys {
		if value, ok := v.m.Get(k); ok {
			sum += int64(value)
		}
	}
	return sum
}

func (v *view) Len() int {
	return v.m.Len()
}

// Stats exposes the trie shape of the view
func (v *view) Stats() hamt.Stats {
	return v.m.Stats()
}
