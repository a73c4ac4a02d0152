package engine_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cylsim/internal/engine"
	"github.com/san-kum/cylsim/internal/thermo"
)

const (
	rodLength    = 0.35
	displacement = 50 * thermo.CCM
	boreRadius   = 0.025
	compression  = 10.0
)

func newTestCylinder(position, phase float64) *engine.Cylinder {
	cyl, err := engine.NewCylinder(position, phase, compression, rodLength, displacement, boreRadius, thermo.StandardAtmosphere())
	Expect(err).NotTo(HaveOccurred())
	return cyl
}

var _ = Describe("Cylinder", func() {
	atm := thermo.StandardAtmosphere()

	Describe("construction", func() {
		DescribeTable("produces a physical chamber for valid inputs",
			func(position, phase, cr, rod, disp, bore float64) {
				cyl, err := engine.NewCylinder(position, phase, cr, rod, disp, bore, atm)
				Expect(err).NotTo(HaveOccurred())
				Expect(cyl.PipeVolume()).To(BeNumerically(">", 0))
				Expect(cyl.Pressure()).To(BeNumerically(">", 0))
				Expect(cyl.Temperature()).To(BeNumerically(">", 0))
				Expect(cyl.Chamber.Valid()).To(BeTrue())
			},
			Entry("50 cc single", -math.Pi, 0.0, 10.0, 0.35, 50*thermo.CCM, 0.025),
			Entry("top dead centre", 0.0, 0.0, 10.0, 0.35, 50*thermo.CCM, 0.025),
			Entry("phased", 1.0, math.Pi, 8.5, 0.15, 250*thermo.CCM, 0.04),
			Entry("barely above 1", 0.3, 0.0, 1.0001, 0.2, 100*thermo.CCM, 0.03),
			Entry("diesel", 2.0, 0.5, 18.0, 0.2, 500*thermo.CCM, 0.042),
			Entry("short rod", 0.0, 0.0, 10.0, 0.0128, 50*thermo.CCM, 0.025),
		)

		It("equilibrates with the atmosphere", func() {
			cyl := newTestCylinder(-math.Pi, 0)
			Expect(cyl.Pressure()).To(Equal(atm.Pressure))
			Expect(cyl.Temperature()).To(Equal(atm.Temperature))
			Expect(cyl.Chamber.Gas.Amount()).To(BeNumerically("~", atm.MoleDensity()*cyl.PipeVolume(), 1e-15))
		})

		It("stores the volume of the actual starting angle", func() {
			cyl := newTestCylinder(0.7, 0.2)
			Expect(cyl.PipeVolume()).To(Equal(cyl.Volume(0.7)))
		})

		DescribeTable("rejects compression ratios of 1 or less",
			func(cr float64) {
				cyl, err := engine.NewCylinder(0, 0, cr, rodLength, displacement, boreRadius, atm)
				Expect(err).To(MatchError(engine.ErrCompressionRatio))
				Expect(cyl).To(BeNil())
			},
			Entry("exactly 1", 1.0),
			Entry("below 1", 0.5),
			Entry("negative", -3.0),
			Entry("NaN", math.NaN()),
		)

		It("rejects a rod not longer than the crank radius", func() {
			cyl, err := engine.NewCylinder(0, 0, compression, 0.01, displacement, boreRadius, atm)
			Expect(err).To(MatchError(engine.ErrGeometry))
			Expect(cyl).To(BeNil())
		})

		DescribeTable("rejects compression ratios whose clearance collapses",
			func(cr float64) {
				cyl, err := engine.NewCylinder(-math.Pi, 0, cr, rodLength, displacement, boreRadius, atm)
				Expect(err).To(MatchError(engine.ErrGeometry))
				Expect(cyl).To(BeNil())
			},
			Entry("1e17", 1e17),
			Entry("1e12", 1e12),
		)

		It("rejects an atmosphere without gas", func() {
			empty := thermo.Atmosphere{Pressure: atm.Pressure, Temperature: atm.Temperature}
			cyl, err := engine.NewCylinder(-math.Pi, 0, compression, rodLength, displacement, boreRadius, empty)
			Expect(err).To(MatchError(thermo.ErrInvalidState))
			Expect(cyl).To(BeNil())
		})

		It("rejects non-positive dimensions", func() {
			_, err := engine.NewCylinder(0, 0, compression, rodLength, 0, boreRadius, atm)
			Expect(err).To(MatchError(engine.ErrParameterBounds))

			_, err = engine.NewCylinder(0, 0, compression, rodLength, displacement, -0.01, atm)
			Expect(err).To(MatchError(engine.ErrParameterBounds))
		})
	})

	Describe("geometry", func() {
		var cyl *engine.Cylinder

		BeforeEach(func() {
			cyl = newTestCylinder(-math.Pi, 0)
		})

		It("recovers the construction parameters", func() {
			Expect(cyl.DisplacementVolume()).To(BeNumerically("~", displacement, 1e-15))
			Expect(cyl.CompressionRatio()).To(BeNumerically("~", compression, 1e-9))
			Expect(cyl.ClearanceVolume()).To(BeNumerically("~", displacement/(compression-1), 1e-15))
		})

		It("is periodic in 2π", func() {
			for theta := -10.0; theta <= 10.0; theta += 0.37 {
				v := cyl.Volume(theta)
				Expect(cyl.Volume(theta+2*math.Pi)).To(BeNumerically("~", v, v*1e-9))
			}
		})

		It("reaches its minimum, the clearance volume, at θ = 0", func() {
			clearance := displacement / (compression - 1)
			v0 := cyl.Volume(0)
			Expect(v0).To(BeNumerically("~", clearance, clearance*1e-9))

			for theta := -math.Pi; theta <= math.Pi; theta += 0.01 {
				Expect(cyl.Volume(theta)).To(BeNumerically(">=", v0-clearance*1e-12))
			}
		})

		It("reaches clearance plus displacement at bottom dead centre", func() {
			clearance := displacement / (compression - 1)
			Expect(cyl.Volume(math.Pi)).To(BeNumerically("~", clearance+displacement, displacement*1e-9))
		})

		It("shifts with phase", func() {
			phased := newTestCylinder(0, math.Pi/2)
			Expect(phased.Volume(-math.Pi / 2)).To(BeNumerically("~", cyl.Volume(0), 1e-15))
		})
	})

	Describe("stepping", func() {
		It("holds state when the volume does not change", func() {
			c := newTestCylinder(1.2, 0)
			before := c.Chamber
			Expect(c.Step(1.2)).To(Succeed())
			Expect(c.Chamber).To(Equal(before))
		})

		It("holds the gas amount fixed", func() {
			c := newTestCylinder(-math.Pi, 0)
			n := c.Chamber.Gas
			Expect(c.Step(-1)).To(Succeed())
			Expect(c.Chamber.Gas).To(Equal(n))
		})

		It("fails loudly and leaves the chamber untouched on a non-positive volume", func() {
			c := newTestCylinder(-math.Pi, 0)
			c.CylinderHeight = 0
			before := c.Chamber

			err := c.Step(0)
			Expect(errors.Is(err, thermo.ErrNonPositiveVolume)).To(BeTrue())
			Expect(c.Chamber).To(Equal(before))
		})
	})
})
