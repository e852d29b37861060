// Package immutablemap adapts benbjohnson/immutable's persistent hash map to the
// maps.Adapter interface. Every insert goes through Map.Set and returns a new version.
package immutablemap

import (
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/workload"
	"github.com/benbjohnson/immutable"
)

type adapter struct{}

// New returns the immutable.Map adapter
func New() maps.Versioned {
	return adapter{}
}

func (adapter) Info() maps.Info {
	return maps.Info{
		Kind:    maps.KindImmutable,
		Model:   maps.ModelPersistent,
		Library: "github.com/benbjohnson/immutable Map",
	}
}

func (adapter) Build(records []workload.Record) maps.View {
	m := immutable.NewMap[string, int32](nil)
	for _, r := range records {
		m = m.Set(r.Key, r.Value)
	}
	return &view{m: m}
}

func (adapter) BuildVersions(records []workload.Record) []maps.View {
	m := immutable.NewMap[string, int32](nil)
	versions := make([]maps.View, 0, len(records)+1)
	versions = append(versions, &view{m: m})

	for _, r := range records {
		m = m.Set(r.Key, r.Value)
		versions = append(versions, &view{m: m})
	}
	return versions
}

type view struct {
	m *immutable.Map[string, int32]
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
