package analysis

// Peaks returns the indices of local maxima lying above the mid-range of the
// trace. A flat top counts once, at its first sample.
func Peaks(data []float64) []int {
	if len(data) < 3 {
		return nil
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	mid := (lo + hi) / 2

	peaks := make([]int, 0)
	for i := 1; i < len(data)-1; i++ {
		if data[i] > mid && data[i] > data[i-1] && data[i] >= data[i+1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// PeakPeriod returns the mean time between successive peaks of a trace
// sampled every dt seconds, or 0 with fewer than two peaks.
func PeakPeriod(data []float64, dt float64) float64 {
	peaks := Peaks(data)
	if len(peaks) < 2 {
		return 0
	}
	span := peaks[len(peaks)-1] - peaks[0]
	return float64(span) * dt / float64(len(peaks)-1)
}
