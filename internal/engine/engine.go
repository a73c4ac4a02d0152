package engine

import (
	"github.com/san-kum/cylsim/internal/thermo"
)

// Engine is an ordered set of cylinders on one crankshaft.
type Engine struct {
	Cylinders []Cylinder
	// rad/s
	Speed float64
	// rad, accumulates without wraparound
	Position float64

	next []thermo.Pipe
}

func NewEngine(speed, position float64, cylinders ...Cylinder) *Engine {
	return &Engine{
		Cylinders: cylinders,
		Speed:     speed,
		Position:  position,
	}
}

// Step advances the crank by Speed·dt and moves every cylinder, in index
// order, to the new shared position. atm and invDt are reserved for
// gas-exchange modelling. The first cylinder that fails aborts the step with
// a *StepError and the engine is left exactly as it was.
func (e *Engine) Step(atm thermo.Atmosphere, dt, invDt float64) error {
	position := e.Position + e.Speed*dt

	if cap(e.next) < len(e.Cylinders) {
		e.next = make([]thermo.Pipe, len(e.Cylinders))
	}
	next := e.next[:len(e.Cylinders)]
	for i := range e.Cylinders {
		chamber := e.Cylinders[i].Chamber
		if err := chamber.Compress(e.Cylinders[i].Volume(position)); err != nil {
			return &StepError{Cylinder: i, Position: position, Wrapped: err}
		}
		next[i] = chamber
	}

	for i := range e.Cylinders {
		e.Cylinders[i].Chamber = next[i]
	}
	e.Position = position
	return nil
}

// Clone returns a deep copy that shares no state with e.
func (e *Engine) Clone() *Engine {
	c := *e
	c.Cylinders = make([]Cylinder, len(e.Cylinders))
	copy(c.Cylinders, e.Cylinders)
	c.next = nil
	return &c
}

func (e *Engine) RPM() float64 {
	return thermo.RadToRPM(e.Speed)
}
