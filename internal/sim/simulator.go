package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/cylsim/internal/engine"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps g cfg.Steps times, recording every cfg.Decimate-th state. g is
// mutated. On cancellation or a failed step the partial result is returned
// together with the error.
func (s *Simulator) Run(ctx context.Context, g *engine.Generator, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	samples := cfg.Steps/cfg.Decimate + 1
	result := &Result{
		Times:     make([]float64, 0, samples),
		Positions: make([]float64, 0, samples),
		Cylinders: make([]Trace, len(g.Engine.Cylinders)),
		Metrics:   make(map[string]float64),
	}
	for i := range result.Cylinders {
		result.Cylinders[i] = Trace{
			Pressure:    make([]float64, 0, samples),
			Temperature: make([]float64, 0, samples),
			Volume:      make([]float64, 0, samples),
		}
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := g.Time()
	s.observe(g, start)
	record(result, g, 0)

	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if err := g.Step(); err != nil {
			runErr = SimError{Time: g.Time() - start, Step: i, Wrapped: err}
			break
		}
		result.StepsTaken++

		t := g.Time() - start
		s.observe(g, t)
		if result.StepsTaken%cfg.Decimate == 0 {
			record(result, g, t)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

// Preview simulates on a clone of g, which is left untouched.
func (s *Simulator) Preview(ctx context.Context, g *engine.Generator, cfg Config) (*Result, error) {
	return s.Run(ctx, g.Clone(), cfg)
}

func (s *Simulator) observe(g *engine.Generator, t float64) {
	for _, m := range s.metrics {
		m.Observe(g.Engine, t)
	}
	for _, o := range s.observers {
		o.OnStep(g.Engine, t)
	}
}

func record(r *Result, g *engine.Generator, t float64) {
	r.Times = append(r.Times, t)
	r.Positions = append(r.Positions, g.Engine.Position)
	for i := range g.Engine.Cylinders {
		c := &g.Engine.Cylinders[i]
		tr := &r.Cylinders[i]
		tr.Pressure = append(tr.Pressure, c.Pressure())
		tr.Temperature = append(tr.Temperature, c.Temperature())
		tr.Volume = append(tr.Volume, c.PipeVolume())
	}
}

func validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Decimate <= 0 {
		return fmt.Errorf("decimate must be positive, got %d", cfg.Decimate)
	}
	return nil
}
