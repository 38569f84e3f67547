package trial

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/montyhall/internal/randutil"
	"github.com/vovakirdan/montyhall/internal/registry"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"always-switch", AlwaysSwitch},
		{"switch", AlwaysSwitch},
		{"ALWAYS-STAY", AlwaysStay},
		{" stay ", AlwaysStay},
		{"random", Random},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStrategy("sometimes")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{Trials: 10, Strategy: AlwaysSwitch}, true},
		{"valid doors", Config{Trials: 10, Strategy: AlwaysStay, Doors: 5}, true},
		{"zero trials", Config{Trials: 0, Strategy: AlwaysSwitch}, false},
		{"negative trials", Config{Trials: -3, Strategy: AlwaysSwitch}, false},
		{"unknown strategy", Config{Trials: 10, Strategy: "maybe"}, false},
		{"too few doors", Config{Trials: 10, Strategy: AlwaysSwitch, Doors: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestRunConverges(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     float64
	}{
		{AlwaysSwitch, 2.0 / 3.0},
		{AlwaysStay, 1.0 / 3.0},
		{Random, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			res, err := Run(context.Background(), Config{
				Trials:   100000,
				Strategy: tt.strategy,
				Seed:     20240601,
			})
			require.NoError(t, err)

			assert.Equal(t, 100000, res.Rounds)
			assert.LessOrEqual(t, res.Wins, res.Rounds)
			assert.InDelta(t, tt.want, res.SuccessRate(), 0.01)
			assert.InDelta(t, tt.want, res.Expected(), 1e-9)

			lo, hi := res.ConfidenceInterval95()
			assert.Less(t, lo, res.SuccessRate())
			assert.Greater(t, hi, res.SuccessRate())
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Trials: 5000, Strategy: Random, Seed: 77}

	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Trials: 10, Strategy: AlwaysSwitch, Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	_, err := Run(context.Background(), Config{Trials: 0, Strategy: AlwaysSwitch})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCompareKeepsOrder(t *testing.T) {
	results, err := Compare(context.Background(), Config{Trials: 20000, Seed: 3}, AlwaysStay, AlwaysSwitch)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, AlwaysStay, results[0].Strategy)
	assert.Equal(t, AlwaysSwitch, results[1].Strategy)
	assert.Greater(t, results[1].SuccessRate(), results[0].SuccessRate())
}

func TestCompareDefaultsToAllStrategies(t *testing.T) {
	results, err := Compare(context.Background(), Config{Trials: 100, Seed: 3})
	require.NoError(t, err)
	require.Len(t, results, len(Strategies()))
	for i, s := range Strategies() {
		assert.Equal(t, s, results[i].Strategy)
	}
}

func TestCompareMatchesSequentialRuns(t *testing.T) {
	cfg := Config{Trials: 3000, Seed: 11, Doors: 4}
	results, err := Compare(context.Background(), cfg)
	require.NoError(t, err)

	for _, got := range results {
		run := cfg
		run.Strategy = got.Strategy
		want, err := Run(context.Background(), run)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSwitchAndStayAreComplementary(t *testing.T) {
	// Same seed means the same car positions and picks, so a round is won
	// by exactly one of the two fixed strategies.
	cfg := Config{Trials: 10000, Seed: 5}

	cfg.Strategy = AlwaysSwitch
	sw, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Strategy = AlwaysStay
	st, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.Trials, sw.Wins+st.Wins)
}

func TestStrategyDecide(t *testing.T) {
	rng := randutil.New(1)
	assert.True(t, AlwaysSwitch.Decide(rng))
	assert.False(t, AlwaysStay.Decide(rng))

	switches := 0
	for range 10000 {
		if Random.Decide(rng) {
			switches++
		}
	}
	assert.InDelta(t, 5000, switches, 300)
}

func TestResultEmpty(t *testing.T) {
	var r Result
	assert.Equal(t, 0.0, r.SuccessRate())
	assert.Equal(t, 0.0, r.StdError())
}

func TestExperimentRegistered(t *testing.T) {
	require.True(t, registry.Exists(ExperimentID))

	exp, err := registry.Create(ExperimentID)
	require.NoError(t, err)

	rep, err := exp.Run(context.Background(), registry.Params{Trials: 2000, Seed: 9, Strategy: "stay"})
	require.NoError(t, err)

	assert.Equal(t, "always-stay", rep.Strategy)
	assert.Equal(t, 3, rep.Doors)
	assert.Equal(t, 2000, rep.Count("rounds"))
	require.Len(t, rep.Metrics, 1)
	assert.InDelta(t, 1.0/3.0, rep.Metrics[0].Expected, 1e-9)
}

func TestExperimentRejectsUnknownStrategy(t *testing.T) {
	_, err := Experiment{}.Run(context.Background(), registry.Params{Trials: 10, Strategy: "never"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
