// Package thermo provides the gas-state primitives of the cylinder model.
//
// The package is a small ideal-gas toolkit:
//
//   - [GasMix]: mole quantities of neutral, oxidizer and fuel species
//   - [HeatCapacityTable]: per-species specific heats used to derive γ
//   - [Atmosphere]: ambient reference state
//   - [Pipe]: a gas volume (volume, temperature, gas, pressure)
//
// All quantities are SI: Pa, K, m³, mol. [Pipe.Compress] applies the
// adiabatic (isentropic) law for a fixed amount of gas:
//
//	p.Compress(newVolume) // P' = P·(V/V')^γ, T' = T·(P'/P)^((γ-1)/γ)
package thermo
