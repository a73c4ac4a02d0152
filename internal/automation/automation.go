package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cylsim/internal/config"
	"github.com/san-kum/cylsim/internal/experiment"
	"github.com/san-kum/cylsim/internal/optim"
	"github.com/san-kum/cylsim/internal/sim"
	"github.com/san-kum/cylsim/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run: a preset or config file, then parameter
// overrides by name (see config.ParamNames).
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Config string             `yaml:"config"`
	Steps  int                `yaml:"steps"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

// StepResult pairs a run with the id it was saved under, if any.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}

	return &scenario, nil
}

// StepConfig resolves the configuration of one step.
func (s ScenarioStep) StepConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Steps > 0 {
		cfg.Steps = s.Steps
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Steps with save_as are written to
// st when st is non-nil. Results of completed steps are returned with the
// error of the first failing one.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.StepConfig()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", cfg.Name)

		exp := experiment.New(cfg)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: cfg.Name, Result: result}
		if st != nil && step.SaveAs != "" {
			sr.RunID, err = st.Save(storage.RunMetadata{
				Name:       cfg.Name,
				Rate:       cfg.Rate,
				SampleRate: cfg.SampleRate,
				Steps:      result.StepsTaken,
				Decimate:   cfg.Decimate,
				RPM:        cfg.Engine.RPM,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one config across a range of a single parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	// cylinder whose chamber is summarised
	Cylinder int
}

type SweepResult struct {
	ParamValue      float64
	PeakPressure    float64
	MinPressure     float64
	PeakTemperature float64
	Drift           float64
}

// RunSweep executes the sweep serially, one fresh engine per value.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i, paramVal := range optim.Linspace(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps) {
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}
		if n := len(exp.Generator().Engine.Cylinders); sweep.Cylinder < 0 || sweep.Cylinder >= n {
			return nil, fmt.Errorf("%w: engine has %d cylinders, no cylinder %d", config.ErrInvalidConfig, n, sweep.Cylinder)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		metric := func(name string) float64 {
			return result.Metrics[fmt.Sprintf("%s_%d", name, sweep.Cylinder)]
		}
		results = append(results, SweepResult{
			ParamValue:      paramVal,
			PeakPressure:    metric("peak_pressure"),
			MinPressure:     metric("min_pressure"),
			PeakTemperature: metric("peak_temperature"),
			Drift:           metric("ideal_gas_drift"),
		})

		slog.Debug("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
