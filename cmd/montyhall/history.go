package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/montyhall/internal/platform/tui"
	"github.com/vovakirdan/montyhall/internal/registry"
	"github.com/vovakirdan/montyhall/internal/storage"
	"github.com/vovakirdan/montyhall/internal/trial"
)

var (
	flagHistoryLimit  int
	flagHistoryBrowse bool
	flagHistoryClear  string
	flagHistoryID     string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved runs",
	Long: `Display recently saved runs, Monty Hall totals per strategy, and recent
play sessions.

Examples:
  montyhall history
  montyhall history --limit 20
  montyhall history --browse
  montyhall history --id 6f1c2a9e-...
  montyhall history --clear montyhall`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs and sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryBrowse, "browse", false, "Browse runs interactively")
	historyCmd.Flags().StringVar(&flagHistoryClear, "clear", "", "Delete all saved runs of an experiment")
	historyCmd.Flags().StringVar(&flagHistoryID, "id", "", "Show one saved run in full")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open run database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear != "" {
		if !registry.Exists(flagHistoryClear) {
			return fmt.Errorf("%w %q", registry.ErrUnknownExperiment, flagHistoryClear)
		}
		if err := store.ClearRuns(flagHistoryClear); err != nil {
			return err
		}
		logger.Info("runs cleared", "experiment", flagHistoryClear)
		return nil
	}

	if flagHistoryID != "" {
		run, err := store.RunByID(flagHistoryID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no saved run with id %q", flagHistoryID)
		}
		printRun(cmd.OutOrStdout(), *run)
		return nil
	}

	if flagHistoryBrowse {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	out := cmd.OutOrStdout()
	if err := printRuns(out, store); err != nil {
		return err
	}
	if err := printStrategyStats(out, store); err != nil {
		return err
	}
	return printSessions(out, store)
}

func printRuns(w io.Writer, store *storage.Store) error {
	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recent runs")
	fmt.Fprintln(w)
	if len(runs) == 0 {
		fmt.Fprintln(w, "  No runs recorded yet.")
		fmt.Fprintln(w, "  Use 'montyhall simulate <experiment> --save' to record one.")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintf(w, "  %-36s  %-16s  %-10s  %-14s  %-5s  %-9s  %s\n", "ID", "Date", "Experiment", "Strategy", "Doors", "Trials", "Estimate")
	fmt.Fprintf(w, "  %-36s  %-16s  %-10s  %-14s  %-5s  %-9s  %s\n", "--", "----", "----------", "--------", "-----", "------", "--------")
	for _, r := range runs {
		strategy, doors, estimate := "-", "-", "-"
		if r.Strategy != "" {
			strategy = r.Strategy
		}
		if r.Doors > 0 {
			doors = fmt.Sprintf("%d", r.Doors)
		}
		if len(r.Metrics) > 0 {
			estimate = fmt.Sprintf("%.4f (%.4f)", r.Metrics[0].Value, r.Metrics[0].Expected)
		}
		fmt.Fprintf(w, "  %-36s  %-16s  %-10s  %-14s  %-5s  %-9d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Experiment, strategy, doors, r.Trials, estimate)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Use 'montyhall history --id <ID>' to show one run in full.")
	fmt.Fprintln(w)
	return nil
}

func printRun(w io.Writer, r storage.RunRecord) {
	fmt.Fprintf(w, "Run %s\n\n", r.ID)
	fmt.Fprintf(w, "  Experiment: %s\n", r.Experiment)
	if r.Strategy != "" {
		fmt.Fprintf(w, "  Strategy:   %s, %d doors\n", r.Strategy, r.Doors)
	}
	fmt.Fprintf(w, "  Trials:     %d (seed %d)\n", r.Trials, r.Seed)
	if r.Wins > 0 {
		fmt.Fprintf(w, "  Wins:       %d (%.4f)\n", r.Wins, r.SuccessRate())
	}
	fmt.Fprintf(w, "  Saved:      %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))

	if len(r.Metrics) > 0 {
		fmt.Fprintln(w)
		for _, m := range r.Metrics {
			fmt.Fprintf(w, "  %-24s  %.4f  (expected %.4f)\n", m.Name, m.Value, m.Expected)
		}
	}
}

func printStrategyStats(w io.Writer, store *storage.Store) error {
	stats, err := store.StrategyStats(trial.ExperimentID)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}

	fmt.Fprintln(w, "Monty Hall totals")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-14s  %-5s  %-5s  %-10s  %s\n", "Strategy", "Doors", "Runs", "Rounds", "Rate")
	fmt.Fprintf(w, "  %-14s  %-5s  %-5s  %-10s  %s\n", "--------", "-----", "----", "------", "----")
	for _, s := range stats {
		fmt.Fprintf(w, "  %-14s  %-5d  %-5d  %-10d  %.4f\n", s.Strategy, s.Doors, s.Runs, s.Rounds, s.SuccessRate())
	}
	fmt.Fprintln(w)
	return nil
}

func printSessions(w io.Writer, store *storage.Store) error {
	sessions, err := store.RecentPlaySessions(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	fmt.Fprintln(w, "Play sessions")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s  %-5s  %-6s  %-5s  %s\n", "Date", "Doors", "Rounds", "Wins", "Switched")
	fmt.Fprintf(w, "  %-16s  %-5s  %-6s  %-5s  %s\n", "----", "-----", "------", "----", "--------")
	for _, s := range sessions {
		fmt.Fprintf(w, "  %-16s  %-5d  %-6d  %-5d  %d\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Doors, s.Rounds, s.Wins, s.Switches)
	}
	return nil
}
