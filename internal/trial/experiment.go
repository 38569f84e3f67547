package trial

import (
	"context"

	"github.com/vovakirdan/montyhall/internal/registry"
)

// ExperimentID is the registry ID of the Monty Hall experiment.
const ExperimentID = "montyhall"

// Experiment adapts Run to the experiment registry.
type Experiment struct{}

func init() {
	registry.Register(ExperimentID, func() registry.Experiment {
		return Experiment{}
	})
}

// ID returns the experiment identifier.
func (Experiment) ID() string { return ExperimentID }

// Title returns the display name.
func (Experiment) Title() string { return "Monty Hall" }

// Run executes the trial driver and reports the success rate.
// An empty strategy defaults to always-switch.
func (Experiment) Run(ctx context.Context, p registry.Params) (registry.Report, error) {
	name := p.Strategy
	if name == "" {
		name = string(AlwaysSwitch)
	}
	strategy, err := ParseStrategy(name)
	if err != nil {
		return registry.Report{}, err
	}

	res, err := Run(ctx, Config{
		Trials:   p.Trials,
		Strategy: strategy,
		Seed:     p.Seed,
		Doors:    p.Doors,
		Logger:   p.Logger,
	})
	if err != nil {
		return registry.Report{}, err
	}
	return ReportFor(res), nil
}

// ReportFor converts a Result into a registry report.
func ReportFor(res Result) registry.Report {
	return registry.Report{
		ExperimentID: ExperimentID,
		Title:        "Monty Hall",
		Strategy:     res.Strategy.String(),
		Doors:        res.Doors,
		Trials:       res.Trials,
		Seed:         res.Seed,
		Counts: []registry.Count{
			{Name: "rounds", Value: res.Rounds},
			{Name: "wins", Value: res.Wins},
		},
		Metrics: []registry.Metric{
			{
				Name:     "P(win)",
				Value:    res.SuccessRate(),
				Expected: res.Expected(),
				StdError: res.StdError(),
			},
		},
	}
}
