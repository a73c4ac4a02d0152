// Package analysis provides trace analysis for cylinder simulations.
//
//   - [PowerSpectrum]: magnitude spectrum of a uniformly sampled trace
//   - [DominantFrequency]: strongest non-DC frequency of a trace
//   - [PeakPeriod]: mean spacing between successive pressure peaks
//   - [NewPVDiagram]: pressure-volume loop for indicator plots
//
// # Cycle Period
//
// For a single cylinder turning at speed ω the pressure trace repeats every
// 2π/ω seconds:
//
//	period := analysis.PeakPeriod(pressures, gen.Dt())
package analysis
