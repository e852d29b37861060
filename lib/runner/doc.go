// Package runner measures harness probes.
//
// For every configured Profile (a GOGC / GOMAXPROCS setting) the runner applies the profile,
// measures each probe and restores the previous runtime settings. A measurement consists of:
//
//   - Rounds calls to testing.Benchmark. The ns/op of the rounds are summarised with
//     util.NewStats, allocations are taken from the last round.
//   - Samples individually timed invocations, recorded into a uniform go-metrics histogram to
//     obtain p50, p95 and p99 latencies.
//
// Every invocation is also a correctness check. The first error (normally an
// *oracle.CorrectnessViolation) aborts the run; no result is recorded for the failing probe.
//
// Counters and latency histograms are kept in a private VictoriaMetrics set and can be
// exported in Prometheus text format with WriteMetrics. Each Runner carries a UUID run ID
// that ends up in every Result, so results from several runs can be stored side by side.
package runner
