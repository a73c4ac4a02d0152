package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cylsim/internal/engine"
	"github.com/san-kum/cylsim/internal/sim"
	"github.com/san-kum/cylsim/internal/thermo"
)

const (
	DefaultRate             = 80000.0
	DefaultSampleRate       = 48000
	DefaultSteps            = 100000
	DefaultDecimate         = 10
	DefaultRPM              = 300.0
	DefaultCompressionRatio = 10.0
	DefaultRodLength        = 0.35
	DefaultDisplacementCC   = 50.0
	DefaultBoreRadius       = 0.025
	DefaultAmbientC         = 20.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name       string           `yaml:"name"`
	Rate       float64          `yaml:"rate"`
	SampleRate uint32           `yaml:"sample_rate"`
	Steps      int              `yaml:"steps"`
	Decimate   int              `yaml:"decimate"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere"`
	Engine     EngineConfig     `yaml:"engine"`
}

type AtmosphereConfig struct {
	Pressure         float64 `yaml:"pressure"`
	TemperatureC     float64 `yaml:"temperature_c"`
	Density          float64 `yaml:"density"`
	MolarMass        float64 `yaml:"molar_mass"`
	OxidizerFraction float64 `yaml:"oxidizer_fraction"`
	FuelFraction     float64 `yaml:"fuel_fraction"`
}

type EngineConfig struct {
	RPM       float64          `yaml:"rpm"`
	Position  float64          `yaml:"position"`
	Cylinders []CylinderConfig `yaml:"cylinders"`
}

type CylinderConfig struct {
	Phase            float64 `yaml:"phase"`
	CompressionRatio float64 `yaml:"compression_ratio"`
	RodLength        float64 `yaml:"rod_length"`
	DisplacementCC   float64 `yaml:"displacement_cc"`
	BoreRadius       float64 `yaml:"bore_radius"`
}

func DefaultCylinder(phase float64) CylinderConfig {
	return CylinderConfig{
		Phase:            phase,
		CompressionRatio: DefaultCompressionRatio,
		RodLength:        DefaultRodLength,
		DisplacementCC:   DefaultDisplacementCC,
		BoreRadius:       DefaultBoreRadius,
	}
}

func DefaultAtmosphere() AtmosphereConfig {
	return AtmosphereConfig{
		Pressure:         thermo.StandardPressure,
		TemperatureC:     DefaultAmbientC,
		Density:          thermo.AirDensity,
		MolarMass:        thermo.AirMolarMass,
		OxidizerFraction: thermo.OxygenFraction,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "single",
		Rate:       DefaultRate,
		SampleRate: DefaultSampleRate,
		Steps:      DefaultSteps,
		Decimate:   DefaultDecimate,
		Atmosphere: DefaultAtmosphere(),
		Engine: EngineConfig{
			RPM:       DefaultRPM,
			Position:  -math.Pi,
			Cylinders: []CylinderConfig{DefaultCylinder(0)},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run parameters. Cylinder geometry is checked by Build.
func (c *Config) Validate() error {
	switch {
	case !(c.Rate > 0):
		return fmt.Errorf("%w: rate must be positive, got %g", ErrInvalidConfig, c.Rate)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	case c.Decimate <= 0:
		return fmt.Errorf("%w: decimate must be positive, got %d", ErrInvalidConfig, c.Decimate)
	case len(c.Engine.Cylinders) == 0:
		return fmt.Errorf("%w: no cylinders", ErrInvalidConfig)
	case c.Atmosphere.OxidizerFraction < 0 || c.Atmosphere.FuelFraction < 0 ||
		c.Atmosphere.OxidizerFraction+c.Atmosphere.FuelFraction > 1:
		return fmt.Errorf("%w: gas fractions must lie in [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// BuildAtmosphere converts the ambient section to SI.
func (c *Config) BuildAtmosphere() (thermo.Atmosphere, error) {
	a := c.Atmosphere
	composition := thermo.GasMix{
		Neutral:  1 - a.OxidizerFraction - a.FuelFraction,
		Oxidizer: a.OxidizerFraction,
		Fuel:     a.FuelFraction,
	}
	return thermo.NewAtmosphere(a.Pressure, thermo.Celsius+a.TemperatureC, composition, a.Density, a.MolarMass)
}

// Build constructs a generator in its starting state.
func (c *Config) Build() (*engine.Generator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	atm, err := c.BuildAtmosphere()
	if err != nil {
		return nil, fmt.Errorf("atmosphere: %w", err)
	}

	cylinders := make([]engine.Cylinder, 0, len(c.Engine.Cylinders))
	for i, cc := range c.Engine.Cylinders {
		cyl, err := engine.NewCylinder(
			c.Engine.Position,
			cc.Phase,
			cc.CompressionRatio,
			cc.RodLength,
			cc.DisplacementCC*thermo.CCM,
			cc.BoreRadius,
			atm,
		)
		if err != nil {
			return nil, fmt.Errorf("cylinder %d: %w", i, err)
		}
		cylinders = append(cylinders, *cyl)
	}

	e := engine.NewEngine(thermo.RPMToRad(c.Engine.RPM), c.Engine.Position, cylinders...)
	return engine.NewGenerator(e, atm, c.Rate, c.SampleRate)
}

// SimConfig returns the run length settings.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Steps:    c.Steps,
		Decimate: c.Decimate,
	}
}
