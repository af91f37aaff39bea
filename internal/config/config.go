// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/pbp"
)

// Config is the process configuration. Command-line flags override it.
type Config struct {
	DB       string `env:"HOOPS_DB"`
	LogLevel string `env:"HOOPS_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"HOOPS_LOG_JSON" envDefault:"false"`
	Workers  int    `env:"HOOPS_WORKERS" envDefault:"4"`

	MinRunPoints       int     `env:"HOOPS_MIN_RUN_POINTS" envDefault:"8"`
	MinStreakPoints    int     `env:"HOOPS_MIN_STREAK_POINTS" envDefault:"6"`
	ClutchMinutes      float64 `env:"HOOPS_CLUTCH_MINUTES" envDefault:"5"`
	GoAheadMinutes     float64 `env:"HOOPS_GO_AHEAD_MINUTES" envDefault:"2"`
	MilestoneThreshold int     `env:"HOOPS_MILESTONE_THRESHOLD" envDefault:"10"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects thresholds that would make every analytic empty.
func (c Config) Validate() error {
	switch {
	case c.MinRunPoints < 1:
		return fmt.Errorf("HOOPS_MIN_RUN_POINTS must be at least 1, got %d", c.MinRunPoints)
	case c.MinStreakPoints < 1:
		return fmt.Errorf("HOOPS_MIN_STREAK_POINTS must be at least 1, got %d", c.MinStreakPoints)
	case c.ClutchMinutes <= 0 || c.ClutchMinutes > 12:
		return fmt.Errorf("HOOPS_CLUTCH_MINUTES must be in (0, 12], got %v", c.ClutchMinutes)
	case c.GoAheadMinutes <= 0 || c.GoAheadMinutes > 12:
		return fmt.Errorf("HOOPS_GO_AHEAD_MINUTES must be in (0, 12], got %v", c.GoAheadMinutes)
	case c.MilestoneThreshold < 1:
		return fmt.Errorf("HOOPS_MILESTONE_THRESHOLD must be at least 1, got %d", c.MilestoneThreshold)
	}
	return nil
}

// PBP returns the play-by-play analyzer options.
func (c Config) PBP() pbp.Options {
	opts := pbp.DefaultOptions()
	opts.MinRunPoints = c.MinRunPoints
	opts.MinStreakPoints = c.MinStreakPoints
	opts.ClutchMinutes = c.ClutchMinutes
	opts.GoAheadMinutes = c.GoAheadMinutes
	return opts
}

// Aggregator returns the season aggregator options.
func (c Config) Aggregator() aggregator.Options {
	return aggregator.Options{MilestoneThreshold: c.MilestoneThreshold}
}
