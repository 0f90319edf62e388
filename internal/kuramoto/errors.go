package kuramoto

import (
	"errors"
	"fmt"
)

// Domain errors for network construction and mutation.
var (
	// ErrInvalidArgument indicates a caller supplied an argument outside its valid domain.
	ErrInvalidArgument = errors.New("kuramoto: invalid argument")

	// ErrDimensionMismatch indicates phase, frequency and coupling sizes disagree.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidArgument)

	// ErrUnknownArrangement indicates an arrangement outside the supported set.
	ErrUnknownArrangement = fmt.Errorf("%w: unknown arrangement", ErrInvalidArgument)

	// ErrInvalidState indicates a phase vector containing NaN or Inf.
	ErrInvalidState = errors.New("kuramoto: invalid state (NaN or Inf detected)")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
