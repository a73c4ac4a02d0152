package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/cylsim/internal/thermo"
)

// relative error allowed between the requested and stored clearance volume
const clearanceTolerance = 1e-6

type Cylinder struct {
	Chamber thermo.Pipe

	// rad, offset of this piston from the shared crank angle
	Phase float64
	// m², bore face
	FaceArea float64
	// m, from head to crank centre including clearance
	CylinderHeight float64
	// m
	CrankRadius float64
	// m
	RodLength float64

	// 1 = open, 0 = closed. Reserved for gas-exchange modelling.
	IntakeValve float64
	// 1 = open, 0 = closed. Reserved for gas-exchange modelling.
	ExhaustValve float64
	// K, instantaneous spark temperature. Reserved for ignition modelling.
	SparkTemp float64
}

// NewCylinder builds a cylinder from its displacement (m³), bore radius (m),
// rod length (m) and compression ratio, and fills it from atm at the given
// crank position. The geometry puts top dead centre at position = -phase.
func NewCylinder(position, phase, compressionRatio, rodLength, displacement, boreRadius float64, atm thermo.Atmosphere) (*Cylinder, error) {
	if !(compressionRatio > 1) || math.IsInf(compressionRatio, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrCompressionRatio, compressionRatio)
	}
	if !positive(displacement) {
		return nil, fmt.Errorf("%w: displacement = %g", ErrParameterBounds, displacement)
	}
	if !positive(boreRadius) {
		return nil, fmt.Errorf("%w: bore radius = %g", ErrParameterBounds, boreRadius)
	}
	if !finite(position) || !finite(phase) {
		return nil, fmt.Errorf("%w: position = %g, phase = %g", ErrParameterBounds, position, phase)
	}

	faceArea := math.Pi * boreRadius * boreRadius
	crankRadius := displacement / faceArea / 2
	if !(rodLength > crankRadius) || math.IsInf(rodLength, 0) {
		return nil, fmt.Errorf("%w: rod %g m, crank radius %g m", ErrGeometry, rodLength, crankRadius)
	}
	clearance := displacement / (compressionRatio - 1)

	c := &Cylinder{
		Phase:          phase,
		FaceArea:       faceArea,
		CylinderHeight: clearance/faceArea + crankRadius + rodLength,
		CrankRadius:    crankRadius,
		RodLength:      rodLength,
	}
	// a clearance below the float resolution of the stroke collapses to zero
	if got := c.ClearanceVolume(); !positive(got) || math.Abs(got-clearance) > clearance*clearanceTolerance {
		return nil, fmt.Errorf("%w: clearance %g m³ not representable beside a %g m stroke (compression ratio %g)",
			ErrGeometry, clearance, 2*crankRadius, compressionRatio)
	}

	chamber, err := thermo.Fill(c.Volume(position), atm)
	if err != nil {
		return nil, fmt.Errorf("fill cylinder: %w", err)
	}
	c.Chamber = chamber
	return c, nil
}

// Volume is the chamber volume in m³ at the given crank position, from the
// slider-crank piston position scaled by the face area.
func (c *Cylinder) Volume(position float64) float64 {
	theta := position + c.Phase
	sin, cos := math.Sincos(theta)
	rs := c.CrankRadius * sin
	piston := c.CrankRadius*cos + math.Sqrt(c.RodLength*c.RodLength-rs*rs)
	return (c.CylinderHeight - piston) * c.FaceArea
}

// ClearanceVolume is the volume at top dead centre in m³.
func (c *Cylinder) ClearanceVolume() float64 {
	return (c.CylinderHeight - c.CrankRadius - c.RodLength) * c.FaceArea
}

// DisplacementVolume is the swept volume in m³.
func (c *Cylinder) DisplacementVolume() float64 {
	return 2 * c.CrankRadius * c.FaceArea
}

func (c *Cylinder) CompressionRatio() float64 {
	clearance := c.ClearanceVolume()
	return (clearance + c.DisplacementVolume()) / clearance
}

// Step moves the piston to the given crank position and advances the
// chamber along an adiabat. Gas composition is held fixed; the valve and
// spark fields are not consulted.
func (c *Cylinder) Step(position float64) error {
	return c.Chamber.Compress(c.Volume(position))
}

// Chamber readback in Pa, K and m³.
func (c *Cylinder) Pressure() float64    { return c.Chamber.Pressure }
func (c *Cylinder) Temperature() float64 { return c.Chamber.Temperature }
func (c *Cylinder) PipeVolume() float64  { return c.Chamber.Volume }

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
