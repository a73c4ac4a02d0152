// Package engine simulates the gas state of reciprocating-engine cylinders
// driven by a shared crankshaft.
//
//   - [Cylinder]: slider-crank geometry around one [thermo.Pipe]
//   - [Engine]: ordered cylinders sharing crank position and speed
//   - [Generator]: fixed-rate driver exposing a single Step
//
// # Example
//
//	atm := thermo.StandardAtmosphere()
//	cyl, _ := engine.NewCylinder(-math.Pi, 0, 10, 0.35, 50*thermo.CCM, 0.025, atm)
//	eng := engine.NewEngine(thermo.RPMToRad(300), -math.Pi, *cyl)
//	gen, _ := engine.NewGenerator(eng, atm, 80000, 48000)
//	for i := 0; i < 1000; i++ {
//	    if err := gen.Step(); err != nil {
//	        return err
//	    }
//	}
//	p := gen.Engine.Cylinders[0].Chamber.Pressure
//
// # Thread Safety
//
// Generators are NOT thread-safe. Use [Generator.Clone] to hand an
// independent copy to another goroutine.
package engine
