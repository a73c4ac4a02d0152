package thermo

import "math"

const (
	// GasConstant in J/(mol·K).
	GasConstant = 8.3145

	// Bar in Pa.
	Bar = 100000.0

	// CCM is one cubic centimetre in m³.
	CCM        = 1e-6
	Milliliter = CCM

	// Celsius is the offset from °C to K.
	Celsius = 273.15

	// AirMolarMass in kg/mol.
	AirMolarMass = 0.02896

	// AirDensity in kg/m³ at 20 °C and 1 atm.
	AirDensity = 1.204

	// OxygenFraction is the mole fraction of O₂ in dry air.
	OxygenFraction = 0.20946

	// StandardPressure in Pa.
	StandardPressure = 101325.0
)

const (
	rpmToAngularVelocity = math.Pi / 30.0
	angularVelocityToRPM = 30.0 / math.Pi
)

// RPMToRad converts revolutions per minute to rad/s.
func RPMToRad(rpm float64) float64 {
	return rpm * rpmToAngularVelocity
}

// RadToRPM converts rad/s to revolutions per minute.
func RadToRPM(rad float64) float64 {
	return rad * angularVelocityToRPM
}
