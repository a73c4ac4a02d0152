package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/cylsim/internal/config"
	"github.com/san-kum/cylsim/internal/engine"
	"github.com/san-kum/cylsim/internal/sim"
	"github.com/san-kum/cylsim/internal/thermo"
)

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	generator *engine.Generator
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// Setup builds the generator from the config and attaches the default
// metrics for every cylinder. Calling it again starts from a fresh engine.
func (e *Experiment) Setup() error {
	if e.cfg == nil {
		return fmt.Errorf("experiment has no config")
	}

	g, err := e.cfg.Build()
	if err != nil {
		return fmt.Errorf("setup %q: %w", e.cfg.Name, err)
	}

	e.generator = g
	e.simulator = sim.New()
	for _, m := range e.registry.DefaultMetrics(len(g.Engine.Cylinders)) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.generator, e.cfg.SimConfig())
}

// Sweep runs the configured engine at each speed (rpm) in parallel, with
// its own set of default metrics per run.
func (e *Experiment) Sweep(ctx context.Context, rpms []float64) ([]*sim.Result, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	speeds := make([]float64, len(rpms))
	for i, rpm := range rpms {
		speeds[i] = thermo.RPMToRad(rpm)
	}

	n := len(e.generator.Engine.Cylinders)
	return sim.Sweep(ctx, e.generator, speeds, e.cfg.SimConfig(), func() []sim.Metric {
		return e.registry.DefaultMetrics(n)
	})
}

func (e *Experiment) Config() *config.Config       { return e.cfg }
func (e *Experiment) Generator() *engine.Generator { return e.generator }
func (e *Experiment) Registry() *Registry          { return e.registry }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
