package engine_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cylsim/internal/analysis"
	"github.com/san-kum/cylsim/internal/engine"
	"github.com/san-kum/cylsim/internal/thermo"
)

const rate = 80000.0

func newTestGenerator(speed, position float64, phases ...float64) *engine.Generator {
	if len(phases) == 0 {
		phases = []float64{0}
	}
	cylinders := make([]engine.Cylinder, len(phases))
	for i, phase := range phases {
		cylinders[i] = *newTestCylinder(position, phase)
	}
	gen, err := engine.NewGenerator(engine.NewEngine(speed, position, cylinders...), thermo.StandardAtmosphere(), rate, 48000)
	Expect(err).NotTo(HaveOccurred())
	return gen
}

var _ = Describe("Engine", func() {
	It("leaves everything unchanged at zero speed", func() {
		gen := newTestGenerator(0, 0.4)
		before := gen.Engine.Cylinders[0].Chamber

		for i := 0; i < 1000; i++ {
			Expect(gen.Step()).To(Succeed())
		}

		Expect(gen.Engine.Position).To(Equal(0.4))
		Expect(gen.Engine.Cylinders[0].Chamber).To(Equal(before))
	})

	It("advances the crank by speed·dt per step", func() {
		speed := thermo.RPMToRad(300)
		gen := newTestGenerator(speed, -math.Pi)

		for i := 0; i < 100; i++ {
			Expect(gen.Step()).To(Succeed())
		}

		Expect(gen.Engine.Position).To(BeNumerically("~", -math.Pi+100*speed/rate, 1e-12))
		Expect(gen.Time()).To(BeNumerically("~", 100/rate, 1e-15))
		Expect(gen.Steps()).To(BeEquivalentTo(100))
	})

	It("heats and pressurises while compressing", func() {
		gen := newTestGenerator(thermo.RPMToRad(300), -0.5)
		cyl := &gen.Engine.Cylinders[0]
		steps := 0

		for gen.Engine.Position < -0.01 {
			p, t, v := cyl.Pressure(), cyl.Temperature(), cyl.PipeVolume()
			Expect(gen.Step()).To(Succeed())
			Expect(cyl.PipeVolume()).To(BeNumerically("<", v))
			Expect(cyl.Pressure()).To(BeNumerically(">", p))
			Expect(cyl.Temperature()).To(BeNumerically(">", t))
			steps++
		}
		Expect(steps).To(BeNumerically(">", 1000))
	})

	It("returns to the starting state after reversing the same angle", func() {
		speed := thermo.RPMToRad(300)
		gen := newTestGenerator(speed, -2.0)
		start := gen.Engine.Cylinders[0].Chamber

		for i := 0; i < 3000; i++ {
			Expect(gen.Step()).To(Succeed())
		}
		Expect(gen.Engine.Cylinders[0].Pressure()).NotTo(BeNumerically("~", start.Pressure, 1))

		gen.Engine.Speed = -speed
		for i := 0; i < 3000; i++ {
			Expect(gen.Step()).To(Succeed())
		}

		end := gen.Engine.Cylinders[0].Chamber
		Expect(end.Pressure).To(BeNumerically("~", start.Pressure, start.Pressure*1e-9))
		Expect(end.Temperature).To(BeNumerically("~", start.Temperature, start.Temperature*1e-9))
	})

	It("steps cylinders independently with the shared position", func() {
		gen := newTestGenerator(thermo.RPMToRad(300), -math.Pi, 0, math.Pi)
		for i := 0; i < 8000; i++ {
			Expect(gen.Step()).To(Succeed())
		}

		first, second := gen.Engine.Cylinders[0], gen.Engine.Cylinders[1]
		Expect(first.PipeVolume()).To(Equal(first.Volume(gen.Engine.Position)))
		Expect(second.PipeVolume()).To(Equal(second.Volume(gen.Engine.Position)))
		// half a revolution from BDC: first is at TDC, second at BDC
		Expect(first.Pressure()).To(BeNumerically(">", 20*second.Pressure()))
	})

	It("reports the failing cylinder", func() {
		gen := newTestGenerator(thermo.RPMToRad(300), 0, 0, 0)
		gen.Engine.Cylinders[1].CylinderHeight = 0

		err := gen.Step()
		var stepErr *engine.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Cylinder).To(Equal(1))
		Expect(err).To(MatchError(thermo.ErrNonPositiveVolume))
		Expect(gen.Steps()).To(BeZero())
	})

	It("leaves every cylinder and the crank untouched when a later cylinder fails", func() {
		gen := newTestGenerator(thermo.RPMToRad(300), -math.Pi/2, 0, 0)
		gen.Engine.Cylinders[1].CylinderHeight = 0
		before := gen.Engine.Clone()

		err := gen.Step()
		var stepErr *engine.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Cylinder).To(Equal(1))
		Expect(stepErr.Position).To(BeNumerically("~", -math.Pi/2+thermo.RPMToRad(300)/rate, 1e-12))

		Expect(gen.Engine.Position).To(Equal(before.Position))
		Expect(gen.Engine.Cylinders[0].Chamber).To(Equal(before.Cylinders[0].Chamber))
		Expect(gen.Engine.Cylinders[1].Chamber).To(Equal(before.Cylinders[1].Chamber))

		// the same step succeeds once the geometry is repaired
		gen.Engine.Cylinders[1].CylinderHeight = gen.Engine.Cylinders[0].CylinderHeight
		Expect(gen.Step()).To(Succeed())
		Expect(gen.Engine.Cylinders[0].Pressure()).NotTo(Equal(before.Cylinders[0].Pressure()))
	})

	It("clones without sharing state", func() {
		gen := newTestGenerator(thermo.RPMToRad(300), -math.Pi)
		clone := gen.Clone()

		for i := 0; i < 500; i++ {
			Expect(clone.Step()).To(Succeed())
		}

		Expect(gen.Engine.Position).To(Equal(-math.Pi))
		Expect(gen.Steps()).To(BeZero())
		Expect(gen.Engine.Cylinders[0].Pressure()).To(Equal(thermo.StandardPressure))
		Expect(clone.Engine.Cylinders[0].Pressure()).NotTo(Equal(thermo.StandardPressure))
	})

	It("rejects invalid generators", func() {
		_, err := engine.NewGenerator(engine.NewEngine(1, 0), thermo.StandardAtmosphere(), rate, 0)
		Expect(err).To(MatchError(engine.ErrNoCylinders))

		_, err = engine.NewGenerator(nil, thermo.StandardAtmosphere(), rate, 0)
		Expect(err).To(MatchError(engine.ErrNoCylinders))

		cyl := newTestCylinder(0, 0)
		_, err = engine.NewGenerator(engine.NewEngine(1, 0, *cyl), thermo.StandardAtmosphere(), 0, 0)
		Expect(err).To(MatchError(engine.ErrParameterBounds))
	})
})

var _ = Describe("300 rpm single cylinder", Ordered, func() {
	const steps = 100000

	var (
		gen       *engine.Generator
		pressures []float64
		ratios    []float64
	)

	BeforeAll(func() {
		gen = newTestGenerator(thermo.RPMToRad(300), -math.Pi)
		pressures = make([]float64, 0, steps)
		ratios = make([]float64, 0, steps/1000)

		for i := 0; i < steps; i++ {
			Expect(gen.Step()).To(Succeed())
			pressures = append(pressures, gen.Engine.Cylinders[0].Pressure())
			if i%1000 == 0 {
				ratios = append(ratios, gen.Engine.Cylinders[0].Chamber.IdealGasRatio())
			}
		}
	})

	It("covers about six revolutions", func() {
		revolutions := (gen.Engine.Position + math.Pi) / (2 * math.Pi)
		Expect(revolutions).To(BeNumerically("~", 6.25, 1e-6))
	})

	It("bottoms out near ambient pressure", func() {
		lo := pressures[0]
		for _, p := range pressures {
			lo = math.Min(lo, p)
		}
		Expect(lo).To(BeNumerically("~", thermo.StandardPressure, thermo.StandardPressure*1e-3))
	})

	It("peaks well above ambient at top dead centre", func() {
		hi := 0.0
		for _, p := range pressures {
			hi = math.Max(hi, p)
		}
		gamma := thermo.DryAir().Gamma()
		want := thermo.StandardPressure * math.Pow(compression, gamma)
		Expect(hi).To(BeNumerically(">", 20*thermo.StandardPressure))
		Expect(hi).To(BeNumerically("~", want, want*1e-3))
	})

	It("repeats every 2π/speed seconds", func() {
		want := 2 * math.Pi / gen.Engine.Speed
		Expect(analysis.PeakPeriod(pressures, 1/rate)).To(BeNumerically("~", want, want*1e-3))

		freq := analysis.DominantFrequency(pressures, rate)
		Expect(freq).To(BeNumerically("~", 1/want, rate/float64(steps)))
	})

	// The two-stage update is not forced onto PV = nRT; drift is measured,
	// not corrected.
	It("keeps ideal-gas drift small", func() {
		r0 := ratios[0]
		for _, r := range ratios {
			Expect(math.Abs(r/r0 - 1)).To(BeNumerically("<", 1e-9))
		}
	})
})
