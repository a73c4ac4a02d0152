package sim

import (
	"context"
	"sync"

	"github.com/san-kum/cylsim/internal/engine"
)

// Sweep runs one clone of g per speed (rad/s) concurrently. Each run gets its
// own metrics from newMetrics, which may be nil. g is not mutated. Results
// are in speed order.
func Sweep(ctx context.Context, g *engine.Generator, speeds []float64, cfg Config, newMetrics func() []Metric) ([]*Result, error) {
	results := make([]*Result, len(speeds))
	errs := make([]error, len(speeds))

	var wg sync.WaitGroup
	for i, speed := range speeds {
		wg.Add(1)
		go func(idx int, speed float64) {
			defer wg.Done()

			gen := g.Clone()
			gen.Engine.Speed = speed

			s := New()
			if newMetrics != nil {
				for _, m := range newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, gen, cfg)
		}(i, speed)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
