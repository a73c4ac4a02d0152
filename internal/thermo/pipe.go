package thermo

import (
	"fmt"
	"math"
)

// Pipe is a gas volume obeying PV = nRT.
type Pipe struct {
	// m³
	Volume float64
	// K
	Temperature float64
	// mol
	Gas GasMix
	// Pa
	Pressure float64
}

// Fill returns a pipe of the given volume in thermal and chemical
// equilibrium with the atmosphere.
func Fill(volume float64, atm Atmosphere) (Pipe, error) {
	if !finitePositive(volume) {
		return Pipe{}, fmt.Errorf("%w: %g", ErrNonPositiveVolume, volume)
	}
	p := Pipe{
		Volume:      volume,
		Temperature: atm.Temperature,
		Gas:         atm.Gas.Scale(volume),
		Pressure:    atm.Pressure,
	}
	if !p.Valid() {
		return Pipe{}, fmt.Errorf("%w: filled from %+v", ErrInvalidState, atm)
	}
	return p, nil
}

// Compress moves the pipe to newVolume along an adiabat with the gas amount
// held fixed. Pressure follows the volume ratio, temperature follows the
// resulting pressure ratio. The pipe is unchanged when an error is returned.
func (p *Pipe) Compress(newVolume float64) error {
	if !finitePositive(newVolume) {
		return fmt.Errorf("%w: %g", ErrNonPositiveVolume, newVolume)
	}

	gamma := p.Gas.Gamma()
	pressure := p.Pressure * math.Pow(p.Volume/newVolume, gamma)
	temperature := p.Temperature * math.Pow(pressure/p.Pressure, (gamma-1)/gamma)

	if !finitePositive(pressure) || !finitePositive(temperature) {
		return fmt.Errorf("%w: p=%g T=%g at V=%g", ErrInvalidState, pressure, temperature, newVolume)
	}

	p.Pressure = pressure
	p.Temperature = temperature
	p.Volume = newVolume
	return nil
}

// IdealGasRatio is PV/(nRT). It is 1 for a state exactly on the ideal-gas
// relation and NaN for an empty pipe.
func (p Pipe) IdealGasRatio() float64 {
	nRT := p.Gas.Amount() * GasConstant * p.Temperature
	if nRT == 0 {
		return math.NaN()
	}
	return p.Pressure * p.Volume / nRT
}

// Valid reports whether volume, pressure and temperature are positive and
// finite and the pipe holds a valid, non-empty gas composition.
func (p Pipe) Valid() bool {
	return finitePositive(p.Volume) &&
		finitePositive(p.Pressure) &&
		finitePositive(p.Temperature) &&
		p.Gas.Valid() &&
		finitePositive(p.Gas.Amount())
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
