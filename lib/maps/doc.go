// Package maps defines the common contract of the lookup engines measured by mapbench.
//
// Every engine is wrapped in an Adapter that turns a workload's records into a populated
// View. The harness only talks to these two interfaces, so adding an engine means adding an
// adapter under engines/ and nothing else.
//
// Key Components:
//
//   - Adapter: builds a View from records, inserting them in workload order. Persistent
//     engines keep only the final version of the build.
//
//   - View: the populated map. Besides Get and Len it provides Probe, which sums the values of
//     a key list. Each engine implements its own Probe loop so the measured loop calls the
//     engine directly instead of going through the View interface once per key.
//
//   - Versioned: implemented by adapters whose engine shares structure between versions
//     (snapshot and persistent models). BuildVersions exposes every intermediate version so
//     the tests can check that later inserts never leak into earlier versions.
//
//   - Kind and Model: string identifiers for engines and their update model (mutable,
//     snapshot, persistent).
//
// Related Packages:
//
// The engines package (github.com/ValentinKolb/mapbench/lib/maps/engines) contains one
// adapter per Kind and the New constructor.
//
// The testing package (github.com/ValentinKolb/mapbench/lib/maps/testing) provides the shared
// test suite and benchmarks every adapter runs:
//   - RunAdapterTests: round trip, miss handling, repeatable probes and version isolation
//   - RunAdapterBenchmarks: build and probe benchmarks at the workload size
package maps
