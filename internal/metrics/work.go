package metrics

import (
	"fmt"

	"github.com/san-kum/cylsim/internal/engine"
)

// IndicatedWork integrates P·dV (J) over the observed trajectory by the
// trapezoid rule. Positive values are work done by the gas. Over whole
// revolutions of a reversible adiabat it stays near zero.
type IndicatedWork struct {
	name     string
	cylinder int
	work     float64
	lastP    float64
	lastV    float64
	samples  int
}

func NewIndicatedWork(cylinder int) *IndicatedWork {
	return &IndicatedWork{
		name:     fmt.Sprintf("indicated_work_%d", cylinder),
		cylinder: cylinder,
	}
}

func (m *IndicatedWork) Name() string { return m.name }

func (m *IndicatedWork) Observe(e *engine.Engine, t float64) {
	if m.cylinder >= len(e.Cylinders) {
		return
	}
	c := &e.Cylinders[m.cylinder]
	p, v := c.Pressure(), c.PipeVolume()

	if m.samples > 0 {
		m.work += 0.5 * (p + m.lastP) * (v - m.lastV)
	}
	m.lastP, m.lastV = p, v
	m.samples++
}

func (m *IndicatedWork) Value() float64 { return m.work }

func (m *IndicatedWork) Reset() {
	m.work = 0
	m.lastP, m.lastV = 0, 0
	m.samples = 0
}
