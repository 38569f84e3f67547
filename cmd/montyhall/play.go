package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/montyhall/internal/montyhall"
	"github.com/vovakirdan/montyhall/internal/platform/tui"
	"github.com/vovakirdan/montyhall/internal/randutil"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Monty Hall by hand",
	Long: `Play rounds of the game show yourself. Your tally is saved to the run
database when you quit or reset.

Controls:
  1-9        - Pick a door
  S          - Switch to the door the host left shut
  K          - Keep your pick
  N/Enter    - Next round
  R          - Reset the tally
  Q/Ctrl+C   - Quit

Examples:
  montyhall play
  montyhall play --doors 5`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int("doors", 0, "Number of doors, 3 to 9")
}

func runPlay(cmd *cobra.Command, args []string) error {
	seed := randutil.SeedOrNow(cfg.Simulation.Seed)
	game, err := montyhall.New(randutil.New(seed), montyhall.WithDoors(cfg.Simulation.DoorCount))
	if err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}
	logger.Debug("starting interactive game", "doors", cfg.Simulation.DoorCount, "seed", seed)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	// The TUI owns the terminal; keep log lines from tearing the screen.
	quiet := logger.With()
	quiet.SetLevel(max(logger.GetLevel(), log.WarnLevel))

	return tui.RunPlay(game, store, quiet)
}
