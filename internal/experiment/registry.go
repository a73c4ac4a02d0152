package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/cylsim/internal/metrics"
	"github.com/san-kum/cylsim/internal/sim"
)

type Registry struct {
	metrics map[string]func(cylinder int) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(int) sim.Metric),
	}

	r.metrics["peak_pressure"] = func(c int) sim.Metric { return metrics.NewPeakPressure(c) }
	r.metrics["min_pressure"] = func(c int) sim.Metric { return metrics.NewMinPressure(c) }
	r.metrics["peak_temperature"] = func(c int) sim.Metric { return metrics.NewPeakTemperature(c) }
	r.metrics["ideal_gas_drift"] = func(c int) sim.Metric { return metrics.NewIdealGasDrift(c) }
	r.metrics["indicated_work"] = func(c int) sim.Metric { return metrics.NewIndicatedWork(c) }

	return r
}

func (r *Registry) Metric(name string, cylinder int) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	if cylinder < 0 {
		return nil, fmt.Errorf("metric %s: invalid cylinder %d", name, cylinder)
	}
	return fn(cylinder), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns every registered metric for each of n cylinders.
func (r *Registry) DefaultMetrics(n int) []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, n*len(names))
	for c := 0; c < n; c++ {
		for _, name := range names {
			out = append(out, r.metrics[name](c))
		}
	}
	return out
}
