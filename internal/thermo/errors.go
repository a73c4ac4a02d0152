package thermo

import "errors"

// Domain errors for gas-state operations.
var (
	// ErrNonPositiveVolume indicates a volume that is zero, negative or not finite.
	ErrNonPositiveVolume = errors.New("thermo: volume must be positive and finite")

	// ErrInvalidState indicates a pressure, temperature or gas amount that is
	// not finite or not positive.
	ErrInvalidState = errors.New("thermo: invalid gas state")

	// ErrInvalidGas indicates a gas composition with negative or non-finite components.
	ErrInvalidGas = errors.New("thermo: invalid gas composition")

	// ErrParameterBounds indicates an ambient parameter outside its valid range.
	ErrParameterBounds = errors.New("thermo: parameter out of valid bounds")
)
