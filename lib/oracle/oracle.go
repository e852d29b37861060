package oracle

import (
	"errors"
	"fmt"
)

// CorrectnessViolation is returned when a probe's sum differs from the workload's reference sum.
// It means the engine under test is broken; the run must not continue.
type CorrectnessViolation struct {
	Probe    string // Name of the failing probe
	Actual   int64  // Sum returned by the probe
	Expected int64  // Reference sum of the workload
}

func (e *CorrectnessViolation) Error() string {
	return fmt.Sprintf("correctness violation in probe %s: test case is broken (got sum %d, expected %d, diff %d)",
		e.Probe, e.Actual, e.Expected, e.Actual-e.Expected)
}

// Validate compares a probe result with the reference sum.
// It returns nil if both are equal and a *CorrectnessViolation otherwise.
func Validate(probe string, actual, expected int64) error {
	if actual == expected {
		return nil
	}
	return &CorrectnessViolation{
		Probe:    probe,
		Actual:   actual,
		Expected: expected,
	}
}

// IsCorrectnessViolation reports whether err (or any error it wraps) is a CorrectnessViolation
func IsCorrectnessViolation(err error) bool {
	var v *CorrectnessViolation
	return errors.As(err, &v)
}
