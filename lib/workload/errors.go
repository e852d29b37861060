package workload

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for negative sizes or sizes beyond the value range
	ErrInvalidSize = errors.New("invalid workload size")
	// ErrAttemptBudget is returned when the source repeats itself too often
	ErrAttemptBudget = errors.New("attempt budget exhausted")
	// ErrInvariant is returned by Workload.Validate
	ErrInvariant = errors.New("workload invariant violated")
)

// GenerationError reports a workload that could not be generated
type GenerationError struct {
	Size      int   // Requested number of unique keys
	Generated int   // Unique keys collected before giving up
	Attempts  int   // Number of draws taken from the source
	Err       error // ErrInvalidSize or ErrAttemptBudget
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("workload generation failed (size %d, %d unique keys after %d attempts): %v",
		e.Size, e.Generated, e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
