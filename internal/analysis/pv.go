package analysis

import (
	"strings"
)

// PVDiagram holds an indicator loop: chamber volume on X, pressure on Y.
type PVDiagram struct {
	Points []struct{ X, Y float64 }
}

// NewPVDiagram pairs volumes with pressures. Extra samples in the longer
// slice are ignored.
func NewPVDiagram(volumes, pressures []float64) *PVDiagram {
	n := len(volumes)
	if len(pressures) < n {
		n = len(pressures)
	}
	d := &PVDiagram{Points: make([]struct{ X, Y float64 }, n)}
	for i := 0; i < n; i++ {
		d.Points[i].X = volumes[i]
		d.Points[i].Y = pressures[i]
	}
	return d
}

// Bounds returns the extent of the loop.
func (d *PVDiagram) Bounds() (minX, maxX, minY, maxY float64) {
	if len(d.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = d.Points[0].X, d.Points[0].X
	minY, maxY = d.Points[0].Y, d.Points[0].Y
	for _, p := range d.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, maxX, minY, maxY
}

// ASCII renders the loop on a width×height character grid.
func (d *PVDiagram) ASCII(width, height int) string {
	if d == nil || len(d.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := d.Bounds()

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range d.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
