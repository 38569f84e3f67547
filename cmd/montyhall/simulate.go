package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/montyhall/internal/randutil"
	"github.com/vovakirdan/montyhall/internal/registry"
	"github.com/vovakirdan/montyhall/internal/storage"
)

var (
	flagJSON bool
	flagSave bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <experiment>",
	Short: "Run an experiment",
	Long: `Run the given experiment for a number of trials and print each estimate
next to its theoretical value.

Strategies (montyhall only):
  always-switch  - always move to the door the host left shut
  always-stay    - always keep the first pick
  random         - flip a fair coin each round

Examples:
  montyhall simulate montyhall
  montyhall simulate montyhall --strategy always-stay --trials 50000
  montyhall simulate montyhall --doors 100 --seed 7 --save
  montyhall simulate family --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Int("trials", 0, "Number of trials (default from config)")
	simulateCmd.Flags().String("strategy", "", "Strategy: always-switch, always-stay, random")
	simulateCmd.Flags().Int("doors", 0, "Number of doors, at least 3")
	simulateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the report as JSON")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Save the run to the database")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	exp, err := registry.Create(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'montyhall list' to see available experiments)", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := exp.Run(ctx, registry.Params{
		Trials:   cfg.Simulation.TrialCount,
		Seed:     randutil.SeedOrNow(cfg.Simulation.Seed),
		Strategy: cfg.Simulation.Strategy,
		Doors:    cfg.Simulation.DoorCount,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if flagSave {
		saveReports(report)
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), toJSON(report))
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

// saveReports stores each report as a run. Storage problems are logged and
// never fail the command.
func saveReports(reports ...registry.Report) {
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()

	for _, r := range reports {
		id, err := store.SaveRun(runRecord(r))
		if err != nil {
			logger.Warn("could not save run", "experiment", r.ExperimentID, "err", err)
			continue
		}
		logger.Info("run saved", "id", id, "experiment", r.ExperimentID, "strategy", r.Strategy)
	}
}

func runRecord(r registry.Report) storage.RunRecord {
	rec := storage.RunRecord{
		Experiment: r.ExperimentID,
		Strategy:   r.Strategy,
		Doors:      r.Doors,
		Trials:     r.Trials,
		Wins:       r.Count("wins"),
		Seed:       r.Seed,
	}
	for _, m := range r.Metrics {
		rec.Metrics = append(rec.Metrics, storage.RunMetric{
			Name:     m.Name,
			Value:    m.Value,
			Expected: m.Expected,
		})
	}
	return rec
}

func printReport(w io.Writer, r registry.Report) {
	fmt.Fprintf(w, "%s - %d trials (seed %d)\n", r.Title, r.Trials, r.Seed)
	if r.Strategy != "" {
		fmt.Fprintf(w, "Strategy: %s, %d doors\n", r.Strategy, r.Doors)
	}
	fmt.Fprintln(w)

	maxNameLen := len("Metric")
	for _, m := range r.Metrics {
		maxNameLen = max(maxNameLen, len(m.Name))
	}

	fmt.Fprintf(w, "  %-*s  %-9s  %-9s  %s\n", maxNameLen, "Metric", "Estimate", "Expected", "95% CI")
	fmt.Fprintf(w, "  %-*s  %-9s  %-9s  %s\n", maxNameLen, "------", "--------", "--------", "------")
	for _, m := range r.Metrics {
		lo, hi := m.Value-1.96*m.StdError, m.Value+1.96*m.StdError
		fmt.Fprintf(w, "  %-*s  %-9.4f  %-9.4f  [%.4f, %.4f]\n",
			maxNameLen, m.Name, m.Value, m.Expected, max(lo, 0), min(hi, 1))
	}

	if len(r.Counts) > 0 {
		fmt.Fprintln(w)
		for _, c := range r.Counts {
			fmt.Fprintf(w, "  %s: %d\n", c.Name, c.Value)
		}
	}
}

type metricJSON struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Expected float64 `json:"expected"`
	StdError float64 `json:"std_error"`
}

type reportJSON struct {
	Experiment string         `json:"experiment"`
	Strategy   string         `json:"strategy,omitempty"`
	Doors      int            `json:"doors,omitempty"`
	Trials     int            `json:"trials"`
	Seed       int64          `json:"seed"`
	Counts     map[string]int `json:"counts,omitempty"`
	Metrics    []metricJSON   `json:"metrics"`
}

func toJSON(r registry.Report) reportJSON {
	out := reportJSON{
		Experiment: r.ExperimentID,
		Strategy:   r.Strategy,
		Doors:      r.Doors,
		Trials:     r.Trials,
		Seed:       r.Seed,
		Metrics:    make([]metricJSON, len(r.Metrics)),
	}
	if len(r.Counts) > 0 {
		out.Counts = make(map[string]int, len(r.Counts))
		for _, c := range r.Counts {
			out.Counts[c.Name] = c.Value
		}
	}
	for i, m := range r.Metrics {
		out.Metrics[i] = metricJSON(m)
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
