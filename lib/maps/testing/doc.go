// Package testing provides standardised tests and benchmarks for map engines that satisfy
// the maps.Adapter interface.
//
// The package contains:
//   - RunAdapterTests: the contract every adapter must meet (round trip at sizes 0, 1, 4 and
//     1000, miss handling, repeatable probes, query order independence, independent builds
//     and, for maps.Versioned adapters, isolation between versions)
//   - RunAdapterBenchmarks: build, probe and single lookup benchmarks on the reference workload
//
// Example usage:
//
//	factory := func() maps.Adapter {
//		return mymap.New()
//	}
//
//	mapstesting.RunAdapterTests(t, "MyMap", factory)
//	mapstesting.RunAdapterBenchmarks(b, "MyMap", factory)
package testing
