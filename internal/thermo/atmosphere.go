package thermo

import (
	"fmt"
	"math"
)

// Atmosphere is the ambient reference state. Gas is a mole density in mol/m³.
type Atmosphere struct {
	// Pa
	Pressure float64
	// K
	Temperature float64
	// mol/m³
	Gas GasMix
}

// NewAtmosphere derives the ambient mole density from a composition (any
// scale, normalised to mole fractions), a mass density in kg/m³ and a molar
// mass in kg/mol.
func NewAtmosphere(pressure, temperature float64, composition GasMix, density, molarMass float64) (Atmosphere, error) {
	params := []struct {
		name  string
		value float64
	}{
		{"pressure", pressure},
		{"temperature", temperature},
		{"density", density},
		{"molar mass", molarMass},
	}
	for _, p := range params {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return Atmosphere{}, fmt.Errorf("%w: %s = %g", ErrParameterBounds, p.name, p.value)
		}
	}
	if !composition.Valid() || composition.Amount() <= 0 {
		return Atmosphere{}, fmt.Errorf("%w: %v", ErrInvalidGas, composition)
	}

	return Atmosphere{
		Pressure:    pressure,
		Temperature: temperature,
		Gas:         composition.Fractions().Scale(density / molarMass),
	}, nil
}

// StandardAtmosphere is dry air at 101325 Pa and 20 °C.
func StandardAtmosphere() Atmosphere {
	atm, err := NewAtmosphere(StandardPressure, Celsius+20, DryAir(), AirDensity, AirMolarMass)
	if err != nil {
		panic(err)
	}
	return atm
}

// DryAir is the mole-fraction composition of dry air.
func DryAir() GasMix {
	return GasMix{
		Neutral:  1 - OxygenFraction,
		Oxidizer: OxygenFraction,
	}
}

// MoleDensity is the total ambient mole density in mol/m³.
func (a Atmosphere) MoleDensity() float64 {
	return a.Gas.Amount()
}
