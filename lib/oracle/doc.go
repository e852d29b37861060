// Package oracle decides whether a probe result is correct.
//
// Every probe sums the values it finds for the workload's query keys. Because the query keys
// are a permutation of the inserted keys, a correct engine always returns the workload's
// reference sum. Validate compares the two and returns a *CorrectnessViolation on mismatch.
// A violation is never retried or ignored: the harness returns it from the probe and the
// runner aborts the whole run.
package oracle
