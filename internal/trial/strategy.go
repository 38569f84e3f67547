package trial

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/montyhall/internal/montyhall"
)

// Strategy decides whether the player switches after the host opens doors.
type Strategy string

const (
	AlwaysSwitch Strategy = "always-switch"
	AlwaysStay   Strategy = "always-stay"
	Random       Strategy = "random" // Switch on a fair coin flip
)

// Strategies returns every known strategy in display order.
func Strategies() []Strategy {
	return []Strategy{AlwaysSwitch, AlwaysStay, Random}
}

// ParseStrategy resolves a strategy name. "switch" and "stay" are accepted
// as shorthands.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "always-switch", "switch":
		return AlwaysSwitch, nil
	case "always-stay", "stay":
		return AlwaysStay, nil
	case "random":
		return Random, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
	}
}

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// Decide returns the switch decision for one round. Only Random draws
// from rng.
func (s Strategy) Decide(rng montyhall.Rand) bool {
	switch s {
	case AlwaysSwitch:
		return true
	case Random:
		return rng.IntN(2) == 1
	default:
		return false
	}
}

// Expected returns the theoretical success rate of the strategy with k doors.
func (s Strategy) Expected(k int) float64 {
	if k < montyhall.ClassicDoors {
		return 0
	}
	win := float64(k-1) / float64(k)
	lose := 1 / float64(k)
	switch s {
	case AlwaysSwitch:
		return win
	case AlwaysStay:
		return lose
	case Random:
		return (win + lose) / 2
	default:
		return 0
	}
}
