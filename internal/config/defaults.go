package config

import (
	_ "embed"
)

//go:embed defaults/montyhall.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			TrialCount: 100000,
			Strategy:   "always-switch",
			Seed:       0,
			DoorCount:  3,
		},
		Storage: StorageConfig{
			DBPath: "~/.montyhall/runs.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
