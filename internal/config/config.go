package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shakerlab/internal/oscillator"
)

const (
	DefaultPreset   = "shake-3"
	DefaultDuration = 6.0
	DefaultSeed     = 1
	DefaultFPS      = 60
	DefaultTheme    = "default"
)

var (
	ErrOutOfRange    = errors.New("config: value out of range")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Preset    string          `yaml:"preset"`
	Shake     ShakeConfig     `yaml:"shake"`
	Noise     NoiseConfig     `yaml:"noise"`
	Recording RecordingConfig `yaml:"recording"`
	Running   bool            `yaml:"running"`
	Seed      int64           `yaml:"seed"`
	FPS       int             `yaml:"fps"`
	Theme     string          `yaml:"theme"`
}

type ShakeConfig struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

type NoiseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

type RecordingConfig struct {
	Duration   float64 `yaml:"duration"`
	Indefinite bool    `yaml:"indefinite"`
}

func DefaultConfig() *Config {
	p := oscillator.DefaultParams()
	return &Config{
		Preset: DefaultPreset,
		Shake: ShakeConfig{
			Frequency: p.ShakeFrequency,
			Amplitude: p.ShakeAmplitude,
		},
		Noise: NoiseConfig{
			Enabled:   p.NoiseEnabled,
			Frequency: p.NoiseFrequency,
			Amplitude: p.NoiseAmplitude,
		},
		Recording: RecordingConfig{Duration: DefaultDuration},
		Running:   p.Running,
		Seed:      DefaultSeed,
		FPS:       DefaultFPS,
		Theme:     DefaultTheme,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// ApplyPreset copies a preset's shake pair into the config.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	c.Preset = p.Name
	c.Shake.Frequency = p.Frequency
	c.Shake.Amplitude = p.Amplitude
	return nil
}

func (c *Config) Validate() error {
	checks := []struct {
		r Range
		v float64
	}{
		{ShakeFrequencyRange, c.Shake.Frequency},
		{ShakeAmplitudeRange, c.Shake.Amplitude},
		{NoiseFrequencyRange, c.Noise.Frequency},
		{NoiseAmplitudeRange, c.Noise.Amplitude},
		{DurationRange, c.Recording.Duration},
	}
	for _, chk := range checks {
		if !chk.r.Contains(chk.v) {
			return fmt.Errorf("%w: %s %v not in [%v, %v]", ErrOutOfRange, chk.r.Name, chk.v, chk.r.Min, chk.r.Max)
		}
	}
	if c.Preset != Custom && GetPreset(c.Preset) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, c.Preset)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: fps %d not in [1, 240]", ErrOutOfRange, c.FPS)
	}
	return nil
}

// Params builds the shared simulation parameters.
func (c *Config) Params() *oscillator.Params {
	return &oscillator.Params{
		ShakeFrequency: c.Shake.Frequency,
		ShakeAmplitude: c.Shake.Amplitude,
		NoiseEnabled:   c.Noise.Enabled,
		NoiseFrequency: c.Noise.Frequency,
		NoiseAmplitude: c.Noise.Amplitude,
		Running:        c.Running,
	}
}
