package engine

import (
	"errors"
	"fmt"
)

// Domain errors for engine construction and stepping.
var (
	// ErrCompressionRatio indicates a compression ratio of 1 or less.
	ErrCompressionRatio = errors.New("engine: compression ratio must be greater than 1")

	// ErrGeometry indicates a connecting rod not longer than the crank radius,
	// for which the piston position is undefined at some crank angles, or a
	// clearance volume too small to survive the head-height arithmetic.
	ErrGeometry = errors.New("engine: invalid cylinder geometry")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("engine: parameter out of valid bounds")

	// ErrNoCylinders indicates an engine without cylinders.
	ErrNoCylinders = errors.New("engine: no cylinders")
)

// StepError wraps a failed cylinder update with the step context.
type StepError struct {
	Cylinder int
	Position float64
	Wrapped  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cylinder %d at crank %.6f rad: %v", e.Cylinder, e.Position, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
