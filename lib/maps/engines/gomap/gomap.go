// Package gomap adapts Go's built-in map to the maps.Adapter interface.
// It is the mutable hash table all other engines are compared against.
package gomap

import (
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/workload"
)

type adapter struct{}

// New returns the built-in map adapter
func New() maps.Adapter {
	return adapter{}
}

func (adapter) Info() maps.Info {
	return maps.Info{
		Kind:    maps.KindBuiltin,
		Model:   maps.ModelMutable,
		Library: "go map[string]int32",
	}
}

func (adapter) Build(records []workload.Record) maps.View {
	m := make(map[string]int32, len(records))
	for _, r := range records {
		m[r.Key] = r.Value
	}
	return view(m)
}

type view map[string]int32

func (v view) Get(key string) (int32, bool) {
	value, ok := v[key]
	return value, ok
}

func (v view) Probe(keys []string) int64 {
	var sum int64
	for _, k := range keys {
		if value, ok := v[k]; ok {
			sum += int64(value)
		}
	}
	return sum
}

func (v view) Len() int {
	return len(v)
}
