package family

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/montyhall/internal/randutil"
	"github.com/vovakirdan/montyhall/internal/registry"
)

// ExperimentID is the registry ID of the family experiment.
const ExperimentID = "family"

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
func (Experiment) Title() string { return "Two-child family" }

// Run draws p.Trials families and reports both conditional probabilities.
func (Experiment) Run(ctx context.Context, p registry.Params) (registry.Report, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	res, err := Run(ctx, randutil.New(p.Seed), p.Trials)
	if err != nil {
		return registry.Report{}, err
	}
	logger.Info("families drawn", "families", res.Families, "both_girls", res.BothGirls)

	return registry.Report{
		ExperimentID: ExperimentID,
		Title:        "Two-child family",
		Trials:       p.Trials,
		Seed:         p.Seed,
		Counts: []registry.Count{
			{Name: "both_girls", Value: res.BothGirls},
			{Name: "older_girl", Value: res.OlderGirl},
			{Name: "either_girl", Value: res.EitherGirl},
		},
		Metrics: []registry.Metric{
			{Name: "P(both | older)", Value: res.BothGivenOlder(), Expected: 0.5},
			{Name: "P(both | either)", Value: res.BothGivenEither(), Expected: 1.0 / 3.0},
		},
	}, nil
}
