package config

import (
	"math"
	"sort"
)

func preset(name string, rpm float64, cylinders ...CylinderConfig) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Engine.RPM = rpm
	cfg.Engine.Cylinders = cylinders
	return cfg
}

func diesel(phase float64) CylinderConfig {
	return CylinderConfig{
		Phase:            phase,
		CompressionRatio: 18,
		RodLength:        0.2,
		DisplacementCC:   500,
		BoreRadius:       0.042,
	}
}

var Presets = map[string]*Config{
	// 50 cc single at 300 rpm, starting at bottom dead centre
	"single": preset("single", 300, DefaultCylinder(0)),

	"twin": preset("twin", 1200,
		DefaultCylinder(0),
		DefaultCylinder(math.Pi),
	),

	// flat-plane crank, firing order 1-3-4-2
	"inline4": preset("inline4", 2400,
		DefaultCylinder(0),
		DefaultCylinder(math.Pi),
		DefaultCylinder(math.Pi),
		DefaultCylinder(0),
	),

	"diesel": preset("diesel", 900, diesel(0)),

	"idle": preset("idle", 0, DefaultCylinder(0)),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
