package solve

import (
	"errors"
	"fmt"
)

// Domain errors for relaxation solves.
var (
	// ErrInvalidTolerance indicates a negative epsilon. Clamping would
	// silently change termination semantics, so it is rejected instead.
	ErrInvalidTolerance = errors.New("solve: tolerance must be non-negative")

	// ErrDidNotConverge indicates the sweep cap was reached while the
	// convergence metric was still at or above epsilon.
	ErrDidNotConverge = errors.New("solve: sweep limit reached before convergence")
)

// ConvergenceError wraps ErrDidNotConverge with where the solve stood
// when it gave up.
type ConvergenceError struct {
	Sweeps int
	Diff   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v (diff %g after %d sweeps)", ErrDidNotConverge, e.Diff, e.Sweeps)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrDidNotConverge
}
