// Package trial drives repeated Monty Hall rounds with a fixed strategy and
// aggregates the win rate.
package trial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/montyhall/internal/montyhall"
	"github.com/vovakirdan/montyhall/internal/randutil"
)

// ErrInvalidConfig is returned for configurations that cannot be run.
var ErrInvalidConfig = errors.New("trial: invalid config")

// Random streams derived from the run seed. The game and the player draw
// from separate streams so a random strategy never shifts the host's draws.
const (
	gameStream   uint64 = 1
	playerStream uint64 = 2
)

// checkEvery is how many trials run between context checks.
const checkEvery = 1024

// Config holds configuration for a trial run.
type Config struct {
	Trials   int
	Strategy Strategy
	Seed     int64
	Doors    int // 0 means the classic three doors
	Logger   *log.Logger
}

// Validate reports whether the config can be run.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trial count must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if c.Doors != 0 && c.Doors < montyhall.ClassicDoors {
		return fmt.Errorf("%w: need at least %d doors, got %d", ErrInvalidConfig, montyhall.ClassicDoors, c.Doors)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Doors == 0 {
		c.Doors = montyhall.ClassicDoors
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}

// Run plays cfg.Trials rounds against a single Game. Every round the player
// picks a door uniformly at random and the strategy decides whether to
// switch.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	cfg = cfg.withDefaults()
	logger := cfg.Logger.With("strategy", cfg.Strategy, "doors", cfg.Doors)

	game, err := montyhall.New(randutil.Derive(cfg.Seed, gameStream), montyhall.WithDoors(cfg.Doors))
	if err != nil {
		return Result{}, fmt.Errorf("trial: cannot create game: %w", err)
	}
	player := randutil.Derive(cfg.Seed, playerStream)
	doors := game.Doors()

	logger.Debug("starting trials", "trials", cfg.Trials, "seed", cfg.Seed)
	start := time.Now()

	for i := 0; i < cfg.Trials; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("trial: stopped after %d of %d trials: %w", i, cfg.Trials, err)
			}
		}

		if err := playRound(game, doors, player, cfg.Strategy); err != nil {
			return Result{}, fmt.Errorf("trial: round %d: %w", i+1, err)
		}
	}

	res := Result{
		Strategy: cfg.Strategy,
		Doors:    cfg.Doors,
		Trials:   cfg.Trials,
		Seed:     cfg.Seed,
		Rounds:   game.TotalRounds(),
		Wins:     game.TotalWins(),
	}

	logger.Info("trials finished",
		"rounds", res.Rounds,
		"wins", res.Wins,
		"rate", fmt.Sprintf("%.4f", res.SuccessRate()),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return res, nil
}

// playRound runs one full choose/switch/continue cycle.
func playRound(game *montyhall.Game, doors montyhall.DoorSet, player montyhall.Rand, strategy Strategy) error {
	pick := doors.At(player.IntN(doors.Len()))
	if err := game.ChooseDoor(pick); err != nil {
		return err
	}
	if err := game.SwitchDoor(strategy.Decide(player)); err != nil {
		return err
	}
	return game.ContinuePlay()
}

// Compare runs the same config once per strategy, concurrently. Each run
// owns its Game; results come back in the order the strategies were given.
// With no strategies, every known strategy is compared.
func Compare(ctx context.Context, cfg Config, strategies ...Strategy) ([]Result, error) {
	if len(strategies) == 0 {
		strategies = Strategies()
	}

	results := make([]Result, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		run := cfg
		run.Strategy = s
		g.Go(func() error {
			res, err := Run(gctx, run)
			if err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
