package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/cylsim/internal/engine"
)

// PeakPressure tracks the highest chamber pressure (Pa) of one cylinder.
type PeakPressure struct {
	name     string
	cylinder int
	peak     float64
}

func NewPeakPressure(cylinder int) *PeakPressure {
	return &PeakPressure{
		name:     fmt.Sprintf("peak_pressure_%d", cylinder),
		cylinder: cylinder,
	}
}

func (m *PeakPressure) Name() string { return m.name }

func (m *PeakPressure) Observe(e *engine.Engine, t float64) {
	if m.cylinder >= len(e.Cylinders) {
		return
	}
	m.peak = math.Max(m.peak, e.Cylinders[m.cylinder].Pressure())
}

func (m *PeakPressure) Value() float64 { return m.peak }
func (m *PeakPressure) Reset()         { m.peak = 0 }

// MinPressure tracks the lowest chamber pressure (Pa) of one cylinder.
type MinPressure struct {
	name     string
	cylinder int
	min      float64
	samples  int
}

func NewMinPressure(cylinder int) *MinPressure {
	return &MinPressure{
		name:     fmt.Sprintf("min_pressure_%d", cylinder),
		cylinder: cylinder,
	}
}

func (m *MinPressure) Name() string { return m.name }

func (m *MinPressure) Observe(e *engine.Engine, t float64) {
	if m.cylinder >= len(e.Cylinders) {
		return
	}
	p := e.Cylinders[m.cylinder].Pressure()
	if m.samples == 0 || p < m.min {
		m.min = p
	}
	m.samples++
}

func (m *MinPressure) Value() float64 { return m.min }

func (m *MinPressure) Reset() {
	m.min = 0
	m.samples = 0
}

// PeakTemperature tracks the highest chamber temperature (K) of one cylinder.
type PeakTemperature struct {
	name     string
	cylinder int
	peak     float64
}

func NewPeakTemperature(cylinder int) *PeakTemperature {
	return &PeakTemperature{
		name:     fmt.Sprintf("peak_temperature_%d", cylinder),
		cylinder: cylinder,
	}
}

func (m *PeakTemperature) Name() string { return m.name }

func (m *PeakTemperature) Observe(e *engine.Engine, t float64) {
	if m.cylinder >= len(e.Cylinders) {
		return
	}
	m.peak = math.Max(m.peak, e.Cylinders[m.cylinder].Temperature())
}

func (m *PeakTemperature) Value() float64 { return m.peak }
func (m *PeakTemperature) Reset()         { m.peak = 0 }
