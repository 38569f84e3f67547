package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/montyhall/internal/randutil"
	"github.com/vovakirdan/montyhall/internal/registry"
	"github.com/vovakirdan/montyhall/internal/trial"
)

var (
	flagCompareJSON bool
	flagCompareSave bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [strategy...]",
	Short: "Compare Monty Hall strategies",
	Long: `Run the Monty Hall experiment once per strategy, in parallel, with the
same seed and trial count. With no arguments every strategy is compared.

Examples:
  montyhall compare
  montyhall compare switch stay --trials 1000000
  montyhall compare --doors 10 --json`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Int("trials", 0, "Number of trials per strategy (default from config)")
	compareCmd.Flags().Int("doors", 0, "Number of doors, at least 3")
	compareCmd.Flags().BoolVar(&flagCompareJSON, "json", false, "Print the reports as JSON")
	compareCmd.Flags().BoolVar(&flagCompareSave, "save", false, "Save each run to the database")
}

func runCompare(cmd *cobra.Command, args []string) error {
	strategies := make([]trial.Strategy, 0, len(args))
	for _, a := range args {
		s, err := trial.ParseStrategy(a)
		if err != nil {
			return err
		}
		strategies = append(strategies, s)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := trial.Compare(ctx, trial.Config{
		Trials: cfg.Simulation.TrialCount,
		Seed:   randutil.SeedOrNow(cfg.Simulation.Seed),
		Doors:  cfg.Simulation.DoorCount,
		Logger: logger,
	}, strategies...)
	if err != nil {
		return err
	}

	reports := make([]registry.Report, len(results))
	for i, r := range results {
		reports[i] = trial.ReportFor(r)
	}

	if flagCompareSave {
		saveReports(reports...)
	}

	if flagCompareJSON {
		out := make([]reportJSON, len(reports))
		for i, r := range reports {
			out[i] = toJSON(r)
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}
	printComparison(cmd.OutOrStdout(), results)
	return nil
}

func printComparison(w io.Writer, results []trial.Result) {
	if len(results) == 0 {
		return
	}
	first := results[0]
	fmt.Fprintf(w, "Monty Hall - %d doors, %d trials per strategy (seed %d)\n\n", first.Doors, first.Trials, first.Seed)

	fmt.Fprintf(w, "  %-14s  %-9s  %-9s  %-9s  %s\n", "Strategy", "Wins", "Rate", "Expected", "95% CI")
	fmt.Fprintf(w, "  %-14s  %-9s  %-9s  %-9s  %s\n", "--------", "----", "----", "--------", "------")
	for _, r := range results {
		lo, hi := r.ConfidenceInterval95()
		fmt.Fprintf(w, "  %-14s  %-9d  %-9.4f  %-9.4f  [%.4f, %.4f]  %s\n",
			r.Strategy, r.Wins, r.SuccessRate(), r.Expected(), lo, hi, bar(r.SuccessRate(), 20))
	}
}

// bar draws rate as a horizontal bar of the given width.
func bar(rate float64, width int) string {
	n := int(rate*float64(width) + 0.5)
	n = min(max(n, 0), width)
	return strings.Repeat("#", n) + strings.Repeat(".", width-n)
}
