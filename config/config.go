// Package config loads HoldPad settings: the repeat cadence, audio
// feedback and the axes shown on the pad. The embedded defaults are parsed
// first and a user file, when given, overrides the fields it sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"HoldPad/device"
	"HoldPad/repeat"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Cadence mirrors repeat.Cadence with YAML names. Durations accept Go
// syntax such as "500ms".
type Cadence struct {
	Interval     time.Duration `yaml:"interval"`
	FastInterval time.Duration `yaml:"fast_interval"`
	SpeedupAfter time.Duration `yaml:"speedup_after"`
}

// Repeat converts c for use with repeat.WithCadence.
func (c Cadence) Repeat() repeat.Cadence {
	return repeat.Cadence{
		Interval:     c.Interval,
		FastInterval: c.FastInterval,
		SpeedupAfter: c.SpeedupAfter,
	}
}

// Config is the full application configuration.
type Config struct {
	Title   string              `yaml:"title"`
	Cadence Cadence             `yaml:"cadence"`
	Sound   bool                `yaml:"sound"`
	Axes    []device.AxisConfig `yaml:"axes"`
}

// Default returns the built-in configuration used when no file sets a
// field.
func Default() *Config {
	d := repeat.DefaultCadence
	return &Config{
		Title: "HoldPad",
		Cadence: Cadence{
			Interval:     d.Interval,
			FastInterval: d.FastInterval,
			SpeedupAfter: d.SpeedupAfter,
		},
		Sound: true,
	}
}

// Load parses defaults, then the file at path if path is not empty, and
// validates the result.
func Load(defaults []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(defaults, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cadence and every axis.
func (c *Config) Validate() error {
	if err := c.Cadence.Repeat().Validate(); err != nil {
		return fmt.Errorf("%w: cadence: %v", ErrInvalid, err)
	}
	if len(c.Axes) == 0 {
		return fmt.Errorf("%w: no axes configured", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Axes))
	for _, a := range c.Axes {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate axis %q", ErrInvalid, a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}
