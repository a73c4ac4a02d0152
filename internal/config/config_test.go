package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cylsim/internal/engine"
	"github.com/san-kum/cylsim/internal/thermo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "single", cfg.Name)
	assert.Positive(t, cfg.Rate)
	assert.Positive(t, cfg.Steps)
	assert.Len(t, cfg.Engine.Cylinders, 1)
	assert.NoError(t, cfg.Validate())
}

func TestBuild(t *testing.T) {
	gen, err := DefaultConfig().Build()
	require.NoError(t, err)

	assert.InDelta(t, thermo.RPMToRad(300), gen.Engine.Speed, 1e-12)
	assert.Equal(t, -math.Pi, gen.Engine.Position)
	assert.Equal(t, 80000.0, gen.Rate)
	assert.Equal(t, uint32(48000), gen.SampleRate)

	cyl := gen.Engine.Cylinders[0]
	assert.InDelta(t, 50*thermo.CCM, cyl.DisplacementVolume(), 1e-15)
	assert.InDelta(t, 10.0, cyl.CompressionRatio(), 1e-9)
	assert.Equal(t, thermo.StandardPressure, cyl.Pressure())
	assert.InDelta(t, thermo.Celsius+20, cyl.Temperature(), 1e-12)
	assert.InDelta(t, thermo.AirDensity/thermo.AirMolarMass, gen.Atmosphere.MoleDensity(), 1e-9)
}

func TestBuild_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Cylinders[0].CompressionRatio = 1
	_, err := cfg.Build()
	assert.ErrorIs(t, err, engine.ErrCompressionRatio)

	cfg = DefaultConfig()
	cfg.Engine.Cylinders = nil
	_, err = cfg.Build()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Atmosphere.Pressure = 0
	_, err = cfg.Build()
	assert.ErrorIs(t, err, thermo.ErrParameterBounds)

	cfg = DefaultConfig()
	cfg.Atmosphere.OxidizerFraction = 0.8
	cfg.Atmosphere.FuelFraction = 0.3
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twin.yaml")
	orig := GetPreset("twin")
	require.NotNil(t, orig)
	orig.Steps = 1234

	require.NoError(t, Save(path, orig))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig, loaded)
}

func TestLoad_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "steps: 10\nengine:\n  rpm: 60\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Steps)
	assert.Equal(t, 60.0, loaded.Engine.RPM)
	assert.Equal(t, DefaultRate, loaded.Rate)
	assert.Len(t, loaded.Engine.Cylinders, 1)
	assert.Equal(t, DefaultAtmosphere(), loaded.Atmosphere)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	assert.Equal(t, []string{"diesel", "idle", "inline4", "single", "twin"}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			require.NotNil(t, cfg)
			gen, err := cfg.Build()
			require.NoError(t, err)
			assert.Len(t, gen.Engine.Cylinders, len(cfg.Engine.Cylinders))
			for i := 0; i < 100; i++ {
				require.NoError(t, gen.Step())
			}
		})
	}

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("inline4")
	require.NotNil(t, cfg)
	cfg.Engine.Cylinders[0].Phase = 42
	cfg.Steps = 1

	fresh := GetPreset("inline4")
	assert.Equal(t, 0.0, fresh.Engine.Cylinders[0].Phase)
	assert.Equal(t, DefaultSteps, fresh.Steps)
}

func TestSetParam(t *testing.T) {
	cfg := GetPreset("twin")
	require.NotNil(t, cfg)

	require.NoError(t, cfg.SetParam("compression_ratio", 14))
	require.NoError(t, cfg.SetParam("rpm", 900))
	for _, c := range cfg.Engine.Cylinders {
		assert.Equal(t, 14.0, c.CompressionRatio)
	}
	assert.Equal(t, 900.0, cfg.Engine.RPM)

	err := cfg.SetParam("valve_lift", 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	assert.Contains(t, ParamNames(), "bore_radius")
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Engine.Cylinders[0].RodLength = 1
	assert.Equal(t, DefaultRodLength, cfg.Engine.Cylinders[0].RodLength)
}
