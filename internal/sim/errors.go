package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a config with a non-positive step, an empty
	// time span, or eval times outside the span.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrStepTooSmall indicates the adaptive timestep fell below the minimum.
	ErrStepTooSmall = errors.New("sim: adaptive timestep below minimum")
)

// InvalidStateError reports an initial state rejected before integration.
type InvalidStateError struct {
	Index  int
	Value  float64
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("sim: invalid state: component %d = %g (%s)", e.Index, e.Value, e.Reason)
}

// SimulationFailure reports an aborted solve. Partial holds the trajectory
// computed up to the failing step so callers can inspect how far it got.
type SimulationFailure struct {
	Step    int
	Time    float64
	Partial *Result
	Wrapped error
}

func (e *SimulationFailure) Error() string {
	return fmt.Sprintf("sim: solve failed at step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationFailure) Unwrap() error {
	return e.Wrapped
}
