package testing

import (
	"testing"

	"github.com/ValentinKolb/mapbench/lib/workload"
)

// RunAdapterBenchmarks runs the build and lookup benchmarks for a maps.Adapter implementation
func RunAdapterBenchmarks(b *testing.B, name string, factory AdapterFactory) {

	b.Run("Build", func(b *testing.B) {
		benchmarkBuild(b, factory)
	})

	b.Run("Probe", func(b *testing.B) {
		benchmarkProbe(b, factory)
	})

	b.Run("Get", func(b *testing.B) {
		benchmarkGet(b, factory)
	})

	b.Run("Get(not)", func(b *testing.B) {
		benchmarkGetNot(b, factory)
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Benchmark for building a view from the reference workload
func benchmarkBuild(b *testing.B, factory AdapterFactory) {
	w := generate(b, workload.DefaultSize)
	adapter := factory()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		adapter.Build(w.Records)
	}
}

// Benchmark for one full probe over all query keys
func benchmarkProbe(b *testing.B, factory AdapterFactory) {
	w := generate(b, workload.DefaultSize)
	view := factory().Build(w.Records)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if view.Probe(w.QueryKeys) != w.ReferenceSum {
			b.Fatal("probe returned a wrong sum")
		}
	}
}

// Benchmark for single lookups of existing keys
func benchmarkGet(b *testing.B, factory AdapterFactory) {
	w := generate(b, workload.DefaultSize)
	view := factory().Build(w.Records)
	keys := w.QueryKeys

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Get(keys[i%len(keys)])
	}
}

// Benchmark for single lookups of missing keys
func benchmarkGetNot(b *testing.B, factory AdapterFactory) {
	w := generate(b, workload.DefaultSize)
	view := factory().Build(w.Records)

	missing := make([]string, len(w.QueryKeys))
	for i, k := range w.QueryKeys {
		missing[i] = "-" + k
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Get(missing[i%len(missing)])
	}
}
