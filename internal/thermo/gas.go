package thermo

import (
	"fmt"
	"math"
)

// GasMix holds amounts of the three tracked species. Depending on context the
// unit is mol (a gas parcel) or mol/m³ (an ambient mole density).
type GasMix struct {
	// nitrogen, argon, combustion products, ..
	Neutral float64
	// oxygen
	Oxidizer float64
	// hexane, octane, ..
	Fuel float64
}

// HeatCapacity is a specific heat pair in kJ/(kg·K).
type HeatCapacity struct {
	Cv float64
	Cp float64
}

// HeatCapacityTable maps each species to its specific heats. Mixture values
// are mole-weighted over the table entries.
type HeatCapacityTable struct {
	Neutral  HeatCapacity
	Oxidizer HeatCapacity
	Fuel     HeatCapacity
}

// AirLike assigns dry-air specific heats to every species, which makes γ
// independent of composition.
var AirLike = HeatCapacityTable{
	Neutral:  HeatCapacity{Cv: 0.718, Cp: 1.005},
	Oxidizer: HeatCapacity{Cv: 0.718, Cp: 1.005},
	Fuel:     HeatCapacity{Cv: 0.718, Cp: 1.005},
}

// defaultHeatCapacities is the table used by GasMix methods without an
// explicit table. It is a copy, so later changes to AirLike do not affect it.
var defaultHeatCapacities = AirLike

func (g GasMix) Amount() float64 {
	return g.Neutral + g.Oxidizer + g.Fuel
}

// Scale multiplies every component by f. Scaling a mole density by a volume
// in m³ yields absolute moles.
func (g GasMix) Scale(f float64) GasMix {
	return GasMix{
		Neutral:  g.Neutral * f,
		Oxidizer: g.Oxidizer * f,
		Fuel:     g.Fuel * f,
	}
}

func (g GasMix) Add(o GasMix) GasMix {
	return GasMix{
		Neutral:  g.Neutral + o.Neutral,
		Oxidizer: g.Oxidizer + o.Oxidizer,
		Fuel:     g.Fuel + o.Fuel,
	}
}

// Fractions returns the composition normalised to mole fractions. A mix with
// no gas is returned unchanged.
func (g GasMix) Fractions() GasMix {
	n := g.Amount()
	if n == 0 {
		return g
	}
	return g.Scale(1 / n)
}

// Valid reports whether every component is finite and non-negative.
func (g GasMix) Valid() bool {
	for _, v := range [...]float64{g.Neutral, g.Oxidizer, g.Fuel} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

func (g GasMix) SpecificHeatConstantVolume() float64 {
	return g.SpecificHeatConstantVolumeWith(defaultHeatCapacities)
}

func (g GasMix) SpecificHeatConstantPressure() float64 {
	return g.SpecificHeatConstantPressureWith(defaultHeatCapacities)
}

func (g GasMix) SpecificHeatConstantVolumeWith(t HeatCapacityTable) float64 {
	return g.weigh(t.Neutral.Cv, t.Oxidizer.Cv, t.Fuel.Cv)
}

func (g GasMix) SpecificHeatConstantPressureWith(t HeatCapacityTable) float64 {
	return g.weigh(t.Neutral.Cp, t.Oxidizer.Cp, t.Fuel.Cp)
}

// Gamma is the ratio of specific heats Cp/Cv.
func (g GasMix) Gamma() float64 {
	return g.GammaWith(defaultHeatCapacities)
}

func (g GasMix) GammaWith(t HeatCapacityTable) float64 {
	return g.SpecificHeatConstantPressureWith(t) / g.SpecificHeatConstantVolumeWith(t)
}

func (g GasMix) weigh(neutral, oxidizer, fuel float64) float64 {
	n := g.Amount()
	if n <= 0 {
		return neutral
	}
	// equal entries short-circuit so the air-like table returns its constants exactly
	if neutral == oxidizer && oxidizer == fuel {
		return neutral
	}
	return (g.Neutral*neutral + g.Oxidizer*oxidizer + g.Fuel*fuel) / n
}

func (g GasMix) String() string {
	return fmt.Sprintf("neutral=%.6g oxidizer=%.6g fuel=%.6g", g.Neutral, g.Oxidizer, g.Fuel)
}
