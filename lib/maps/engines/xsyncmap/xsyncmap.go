// Package xsyncmap adapts xsync.MapOf, a concurrent hash table, to the maps.Adapter interface.
// The map is filled in place like the built-in map; lookups go through Load.
package xsyncmap

import (
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/workload"
	"github.com/puzpuzpuz/xsync/v3"
)

type adapter struct{}

// New returns the xsync.MapOf adapter
func New() maps.Adapter {
	return adapter{}
}

func (adapter) Info() maps.Info {
	return maps.Info{
		Kind:    maps.KindXsync,
		Model:   maps.ModelMutable,
		Library: "github.com/puzpuzpuz/xsync/v3 MapOf",
	}
}

func (adapter) Build(records []workload.Record) maps.View {
	m := xsync.NewMapOf[string, int32](xsync.WithPresize(len(records)))
	for _, r := range records {
		m.Store(r.Key, r.Value)
	}
	return &view{m: m}
}

type view struct {
	m *xsync.MapOf[string, int32]
}

func (v *view) Get(key string) (int32, bool) {
	return v.m.Load(key)
}

func (v *view) Probe(keys []string) int64 {
	var sum int64
	for _, k := range keys {
		if value, ok := v.m.Load(k); ok {
			sum += int64(value)
		}
	}
	return sum
}

func (v *view) Len() int {
	return v.m.Size()
}
