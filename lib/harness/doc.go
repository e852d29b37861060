// Package harness wires the workload, the map engines and the correctness oracle together.
//
// New generates the workload once, builds one view per selected engine from its records and
// wraps every view in a Probe. Probe.Run performs a single lookup pass over the workload's
// query keys and validates the sum with oracle.Validate, so every timed invocation is also a
// correctness check. The views are built before any probe runs and are never modified
// afterwards; calling Run repeatedly always yields the same result.
//
// The harness is single-threaded. It does not time anything itself apart from recording how
// long each build took; timing is the job of the runner package.
package harness
