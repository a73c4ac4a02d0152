package sim

import (
	"fmt"

	"github.com/san-kum/cylsim/internal/engine"
)

type Metric interface {
	Name() string
	Observe(e *engine.Engine, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(e *engine.Engine, t float64)
}

type Config struct {
	// generator steps to take
	Steps int
	// record every Nth step
	Decimate int
}

func DefaultConfig() Config {
	return Config{
		Steps:    100000,
		Decimate: 10,
	}
}

// Trace holds the recorded chamber state of one cylinder.
type Trace struct {
	// Pa
	Pressure []float64
	// K
	Temperature []float64
	// m³
	Volume []float64
}

type Result struct {
	// s
	Times []float64
	// rad
	Positions  []float64
	Cylinders  []Trace
	Metrics    map[string]float64
	StepsTaken int
}

// Samples is the number of recorded rows.
func (r *Result) Samples() int {
	return len(r.Times)
}

// Row returns sample i flattened as position followed by pressure,
// temperature and volume of each cylinder.
func (r *Result) Row(i int) []float64 {
	row := make([]float64, 0, 1+3*len(r.Cylinders))
	row = append(row, r.Positions[i])
	for _, c := range r.Cylinders {
		row = append(row, c.Pressure[i], c.Temperature[i], c.Volume[i])
	}
	return row
}

type SimError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
