// Package config provides YAML-based configuration loading with
// environment overrides for the montyhall CLI.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/montyhall/internal/trial"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config contains all configuration for the CLI.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig defines the trial driver parameters.
type SimulationConfig struct {
	TrialCount int    `yaml:"trial_count" env:"MONTYHALL_TRIALS"`
	Strategy   string `yaml:"strategy" env:"MONTYHALL_STRATEGY"` // always-switch, always-stay, random
	Seed       int64  `yaml:"seed" env:"MONTYHALL_SEED"`         // 0 = random based on time
	DoorCount  int    `yaml:"door_count" env:"MONTYHALL_DOORS"`
}

// StorageConfig defines where run summaries are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"MONTYHALL_DB"`
}

// LoggingConfig defines log output.
type LoggingConfig struct {
	Level string `yaml:"level" env:"MONTYHALL_LOG_LEVEL"` // debug, info, warn, error
}

// Validate checks the values that no command can work around.
func (c Config) Validate() error {
	if c.Simulation.TrialCount <= 0 {
		return fmt.Errorf("%w: trial_count must be positive, got %d", ErrInvalid, c.Simulation.TrialCount)
	}
	if _, err := trial.ParseStrategy(c.Simulation.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Simulation.DoorCount < 3 {
		return fmt.Errorf("%w: door_count must be at least 3, got %d", ErrInvalid, c.Simulation.DoorCount)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Logging.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}
	return lvl, nil
}
