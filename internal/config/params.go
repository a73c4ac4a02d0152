package config

import (
	"fmt"
	"sort"
)

// params maps tunable names to setters. Cylinder parameters apply to every
// cylinder.
var params = map[string]func(c *Config, v float64){
	"rpm":         func(c *Config, v float64) { c.Engine.RPM = v },
	"rate":        func(c *Config, v float64) { c.Rate = v },
	"pressure":    func(c *Config, v float64) { c.Atmosphere.Pressure = v },
	"temperature": func(c *Config, v float64) { c.Atmosphere.TemperatureC = v },
	"compression_ratio": func(c *Config, v float64) {
		for i := range c.Engine.Cylinders {
			c.Engine.Cylinders[i].CompressionRatio = v
		}
	},
	"rod_length": func(c *Config, v float64) {
		for i := range c.Engine.Cylinders {
			c.Engine.Cylinders[i].RodLength = v
		}
	},
	"displacement_cc": func(c *Config, v float64) {
		for i := range c.Engine.Cylinders {
			c.Engine.Cylinders[i].DisplacementCC = v
		}
	},
	"bore_radius": func(c *Config, v float64) {
		for i := range c.Engine.Cylinders {
			c.Engine.Cylinders[i].BoreRadius = v
		}
	},
}

// SetParam sets a tunable parameter by name.
func (c *Config) SetParam(name string, v float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q (available: %v)", ErrInvalidConfig, name, ParamNames())
	}
	set(c, v)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Engine.Cylinders = append([]CylinderConfig(nil), c.Engine.Cylinders...)
	return &cp
}
