package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/cylsim/internal/thermo"
)

// Generator drives an engine at a fixed simulation rate.
type Generator struct {
	Engine     *Engine
	Atmosphere thermo.Atmosphere
	// Hz, simulation update rate
	Rate float64
	// Hz, consumed by the downstream audio stage, not by the simulation
	SampleRate uint32

	steps uint64
}

func NewGenerator(e *Engine, atm thermo.Atmosphere, rate float64, sampleRate uint32) (*Generator, error) {
	if e == nil || len(e.Cylinders) == 0 {
		return nil, ErrNoCylinders
	}
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: rate = %g", ErrParameterBounds, rate)
	}
	return &Generator{
		Engine:     e,
		Atmosphere: atm,
		Rate:       rate,
		SampleRate: sampleRate,
	}, nil
}

// Step advances the simulation by one 1/Rate increment.
func (g *Generator) Step() error {
	if err := g.Engine.Step(g.Atmosphere, 1/g.Rate, g.Rate); err != nil {
		return err
	}
	g.steps++
	return nil
}

// Dt is the step length in seconds.
func (g *Generator) Dt() float64 {
	return 1 / g.Rate
}

// Time is the simulated time in seconds since construction.
func (g *Generator) Time() float64 {
	return float64(g.steps) / g.Rate
}

// Steps is the number of successful steps since construction.
func (g *Generator) Steps() uint64 {
	return g.steps
}

// Clone returns an independent copy, used to simulate ahead without touching
// the original.
func (g *Generator) Clone() *Generator {
	c := *g
	c.Engine = g.Engine.Clone()
	return &c
}
