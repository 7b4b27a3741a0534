package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"framemap/internal/core"
	"framemap/internal/frames"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Color modes for shell output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the shell settings. Values are layered: defaults, then an
// optional yaml file, then FRAMEMAP_* environment variables, then flags.
type Config struct {
	Shell ShellConfig `yaml:"shell"`
	Links LinksConfig `yaml:"links"`
	Log   LogConfig   `yaml:"log"`
}

// ShellConfig controls the command loop.
type ShellConfig struct {
	Prompt      string `yaml:"prompt" env:"FRAMEMAP_PROMPT"`
	Color       string `yaml:"color" env:"FRAMEMAP_COLOR"`
	StopOnError bool   `yaml:"stop_on_error" env:"FRAMEMAP_STOP_ON_ERROR"`
}

// LinksConfig controls link placement.
type LinksConfig struct {
	BoundsPolicy string `yaml:"bounds_policy" env:"FRAMEMAP_BOUNDS_POLICY"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level" env:"FRAMEMAP_LOG_LEVEL"`
	Format string `yaml:"format" env:"FRAMEMAP_LOG_FORMAT"` // console or json
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{Prompt: "> ", Color: ColorAuto},
		Links: LinksConfig{BoundsPolicy: string(frames.BoundsOneSided)},
		Log:   LogConfig{Level: "warn", Format: "console"},
	}
}

// LoadConfig reads path (if non-empty) over the defaults and applies
// environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown enumerated values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := frames.ParseBoundsPolicy(c.Links.BoundsPolicy); err != nil {
		errs = append(errs, err)
	}
	switch c.Shell.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("unknown color mode %q", c.Shell.Color))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Policy returns the parsed bounds policy.
func (c *Config) Policy() frames.BoundsPolicy {
	p, err := frames.ParseBoundsPolicy(c.Links.BoundsPolicy)
	if err != nil {
		return frames.BoundsOneSided
	}
	return p
}

// Parameters describes the effective settings for display.
func (c *Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Shell",
			Params: []core.Parameter{
				{Key: "prompt", Label: "Prompt", Value: strconv.Quote(c.Shell.Prompt)},
				{Key: "color", Label: "Color", Value: c.Shell.Color},
				{Key: "stop_on_error", Label: "Stop on error", Value: strconv.FormatBool(c.Shell.StopOnError)},
			},
		},
		{
			Name: "Links",
			Params: []core.Parameter{
				{Key: "bounds_policy", Label: "Bounds policy", Value: c.Links.BoundsPolicy,
					Description: "one-sided records links onto smaller frames on the source only; strict refuses them"},
			},
		},
		{
			Name: "Log",
			Params: []core.Parameter{
				{Key: "level", Label: "Level", Value: c.Log.Level},
				{Key: "format", Label: "Format", Value: c.Log.Format},
			},
		},
	}}
}
