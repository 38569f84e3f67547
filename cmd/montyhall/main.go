// montyhall simulates the Monty Hall problem and related probability puzzles
// in the terminal.
//
// Usage:
//
//	montyhall list                   - List available experiments
//	montyhall simulate <experiment>  - Run an experiment and print the estimate
//	montyhall compare                - Run every Monty Hall strategy side by side
//	montyhall play                   - Play rounds by hand
//	montyhall history                - Show saved runs and play sessions
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.montyhall/config.yaml)
//	--seed <value>      - RNG seed for reproducible runs (0 = time based)
//	--db <path>         - Database path (default: ~/.montyhall/runs.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/montyhall/internal/config"
	"github.com/vovakirdan/montyhall/internal/storage"

	// Import experiments to register them
	_ "github.com/vovakirdan/montyhall/internal/family"
	_ "github.com/vovakirdan/montyhall/internal/trial"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Set up by loadConfig before any subcommand runs
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "montyhall",
	Short: "Monty Hall - simulate and play the three-door problem",
	Long: `Monty Hall runs repeated trials of the Monty Hall game show problem
and shows how the estimated win rate converges on the theory.

Available commands:
  list      - Show all available experiments
  simulate  - Run an experiment
  compare   - Compare the switch, stay and random strategies
  play      - Play rounds by hand
  history   - View saved runs

Examples:
  montyhall simulate montyhall --trials 100000 --strategy always-switch
  montyhall simulate montyhall --doors 10 --seed 42 --json
  montyhall compare --save
  montyhall play --doors 4`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run database (default ~/.montyhall/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig resolves the config file, environment and explicitly set flags,
// in increasing order of precedence, then builds the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		loaded.Simulation.Seed = flagSeed
	}
	if flags.Changed("db") {
		loaded.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		loaded.Logging.Level = flagLogLevel
	}
	if flags.Changed("trials") {
		loaded.Simulation.TrialCount, _ = flags.GetInt("trials")
	}
	if flags.Changed("strategy") {
		loaded.Simulation.Strategy, _ = flags.GetString("strategy")
	}
	if flags.Changed("doors") {
		loaded.Simulation.DoorCount, _ = flags.GetInt("doors")
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	level, _ := loaded.LogLevel()

	cfg = loaded
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "montyhall",
		Level:           level,
	})
	logger.Debug("config loaded", "trials", cfg.Simulation.TrialCount, "strategy", cfg.Simulation.Strategy,
		"doors", cfg.Simulation.DoorCount, "db", cfg.Storage.DBPath)
	return nil
}

// openStore opens the run database. A store that cannot be opened is
// reported and skipped; callers must handle a nil store.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("run database unavailable", "path", cfg.Storage.DBPath, "err", err)
		return nil
	}
	return store
}
