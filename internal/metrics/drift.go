package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/cylsim/internal/engine"
)

// IdealGasDrift reports the largest relative departure of PV/(nRT) from its
// first observed value. The adiabatic step does not re-impose the ideal-gas
// relation, so this measures accumulated floating-point drift.
type IdealGasDrift struct {
	name     string
	cylinder int
	initial  float64
	maxDrift float64
	samples  int
}

func NewIdealGasDrift(cylinder int) *IdealGasDrift {
	return &IdealGasDrift{
		name:     fmt.Sprintf("ideal_gas_drift_%d", cylinder),
		cylinder: cylinder,
	}
}

func (m *IdealGasDrift) Name() string { return m.name }

func (m *IdealGasDrift) Observe(e *engine.Engine, t float64) {
	if m.cylinder >= len(e.Cylinders) {
		return
	}
	ratio := e.Cylinders[m.cylinder].Chamber.IdealGasRatio()

	if m.samples == 0 {
		m.initial = ratio
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(ratio/m.initial - 1)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *IdealGasDrift) Value() float64 {
	return m.maxDrift
}

func (m *IdealGasDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
