// Package viz is the terminal live view of a running engine.
//
// [Model] is a Bubble Tea program that steps an [engine.Generator] in real
// time, draws the crank, rod and piston of the first cylinder on a Braille
// [Canvas] and plots the recent chamber pressure and temperature.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+ -   - Engine speed up/down by 10%
//	P     - Preview the next revolution without advancing the engine
//	T     - Toggle dark/light theme
//	R     - Reset to the starting state
//	Q     - Quit
//
// A failed simulation step stops the engine. The error is shown until reset.
package viz
