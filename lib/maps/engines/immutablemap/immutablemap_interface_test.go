package immutablemap

import (
	"testing"

	"github.com/ValentinKolb/mapbench/lib/maps"
	mapstesting "github.com/ValentinKolb/mapbench/lib/maps/testing"
)

func Test(t *testing.T) {
	mapstesting.RunAdapterTests(t, "Immutable", func() maps.Adapter {
		return New()
	})
}

func Benchmark(b *testing.B) {
	mapstesting.RunAdapterBenchmarks(b, "Immutable", func() maps.Adapter {
		return New()
	})
}
