package analysis

import (
	"math"
	"strings"
	"testing"
)

func sine(n int, freq, rate float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return data
}

func TestPowerSpectrum(t *testing.T) {
	data := sine(64, 4, 64)
	ps := PowerSpectrum(data)

	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}
	if math.Abs(ps[0]-3*64) > 1e-9 {
		t.Errorf("DC bin = %v, want %v", ps[0], 3*64)
	}
	if math.Abs(ps[4]-32) > 1e-9 {
		t.Errorf("bin 4 = %v, want 32", ps[4])
	}

	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		n          int
		freq, rate float64
	}{
		{1024, 50, 1000},
		{1000, 5, 200},
		{3000, 12.5, 300},
	}

	for _, tt := range tests {
		got := DominantFrequency(sine(tt.n, tt.freq, tt.rate), tt.rate)
		resolution := tt.rate / float64(tt.n)
		if math.Abs(got-tt.freq) > resolution {
			t.Errorf("n=%d: dominant = %v, want %v ± %v", tt.n, got, tt.freq, resolution)
		}
	}
}

func TestPeaks(t *testing.T) {
	data := []float64{0, 1, 5, 1, 0, 2, 0, 6, 6, 1}
	peaks := Peaks(data)

	if len(peaks) != 2 || peaks[0] != 2 || peaks[1] != 7 {
		t.Errorf("Peaks = %v, want [2 7]", peaks)
	}
}

func TestPeakPeriod(t *testing.T) {
	rate := 1000.0
	data := sine(5000, 2, rate)

	if got := PeakPeriod(data, 1/rate); math.Abs(got-0.5) > 1e-3 {
		t.Errorf("PeakPeriod = %v, want 0.5", got)
	}
	if got := PeakPeriod([]float64{1, 2, 1}, 1); got != 0 {
		t.Errorf("single peak should give 0, got %v", got)
	}
}

func TestPVDiagram(t *testing.T) {
	volumes := []float64{1, 2, 3, 4}
	pressures := []float64{8, 4, 2}

	d := NewPVDiagram(volumes, pressures)
	if len(d.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(d.Points))
	}

	minX, maxX, minY, maxY := d.Bounds()
	if minX != 1 || maxX != 3 || minY != 2 || maxY != 8 {
		t.Errorf("Bounds = %v %v %v %v", minX, maxX, minY, maxY)
	}

	out := d.ASCII(20, 10)
	if strings.Count(out, "\n") != 10 {
		t.Errorf("expected 10 rows, got %q", out)
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("expected 3 points plotted, got %q", out)
	}

	var empty *PVDiagram
	if empty.ASCII(10, 10) != "" {
		t.Error("nil diagram should render empty")
	}
}
