package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/cylsim/internal/engine"
	"github.com/san-kum/cylsim/internal/thermo"
)

const rate = 80000.0

func newGenerator(t *testing.T) *engine.Generator {
	t.Helper()
	atm := thermo.StandardAtmosphere()
	cyl, err := engine.NewCylinder(-math.Pi, 0, 10, 0.35, 50*thermo.CCM, 0.025, atm)
	if err != nil {
		t.Fatalf("cylinder: %v", err)
	}
	gen, err := engine.NewGenerator(engine.NewEngine(thermo.RPMToRad(300), -math.Pi, *cyl), atm, rate, 48000)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	return gen
}

type metric interface {
	Name() string
	Observe(e *engine.Engine, t float64)
	Value() float64
	Reset()
}

func run(t *testing.T, gen *engine.Generator, steps int, ms ...metric) {
	t.Helper()
	for _, m := range ms {
		m.Observe(gen.Engine, gen.Time())
	}
	for i := 0; i < steps; i++ {
		if err := gen.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		for _, m := range ms {
			m.Observe(gen.Engine, gen.Time())
		}
	}
}

func TestPressureExtremes(t *testing.T) {
	gen := newGenerator(t)
	peak := NewPeakPressure(0)
	low := NewMinPressure(0)
	hot := NewPeakTemperature(0)

	run(t, gen, 16000, peak, low, hot)

	gamma := thermo.DryAir().Gamma()
	wantPeak := thermo.StandardPressure * math.Pow(10, gamma)
	if math.Abs(peak.Value()-wantPeak)/wantPeak > 1e-3 {
		t.Errorf("peak pressure = %v, want %v", peak.Value(), wantPeak)
	}
	if math.Abs(low.Value()-thermo.StandardPressure)/thermo.StandardPressure > 1e-6 {
		t.Errorf("min pressure = %v, want ambient", low.Value())
	}
	wantT := (thermo.Celsius + 20) * math.Pow(10, gamma-1)
	if math.Abs(hot.Value()-wantT)/wantT > 1e-3 {
		t.Errorf("peak temperature = %v, want %v", hot.Value(), wantT)
	}

	if peak.Name() != "peak_pressure_0" || low.Name() != "min_pressure_0" || hot.Name() != "peak_temperature_0" {
		t.Errorf("unexpected names: %s %s %s", peak.Name(), low.Name(), hot.Name())
	}
}

func TestIdealGasDrift(t *testing.T) {
	gen := newGenerator(t)
	m := NewIdealGasDrift(0)

	run(t, gen, 50000, m)

	if m.Value() > 1e-9 {
		t.Errorf("ideal-gas drift = %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestIndicatedWork(t *testing.T) {
	gen := newGenerator(t)
	compression := NewIndicatedWork(0)
	run(t, gen, 8000, compression)

	// adiabatic compression work from BDC to TDC: P1·V1·(r^(γ-1) - 1)/(γ-1)
	gamma := thermo.DryAir().Gamma()
	v1 := 50*thermo.CCM + 50*thermo.CCM/9
	want := -thermo.StandardPressure * v1 * (math.Pow(10, gamma-1) - 1) / (gamma - 1)
	if math.Abs(compression.Value()-want)/math.Abs(want) > 1e-2 {
		t.Errorf("compression work = %v J, want %v J", compression.Value(), want)
	}

	cycle := NewIndicatedWork(0)
	run(t, newGenerator(t), 16000, cycle)
	if math.Abs(cycle.Value()) > 1e-3*math.Abs(want) {
		t.Errorf("net work over a revolution = %v J, want ~0", cycle.Value())
	}
}

func TestMetricsIgnoreMissingCylinder(t *testing.T) {
	gen := newGenerator(t)
	ms := []metric{NewPeakPressure(3), NewMinPressure(3), NewPeakTemperature(3), NewIdealGasDrift(3), NewIndicatedWork(3)}

	run(t, gen, 10, ms...)

	for _, m := range ms {
		if m.Value() != 0 {
			t.Errorf("%s: expected 0 for a missing cylinder, got %v", m.Name(), m.Value())
		}
	}
}
