// Package family estimates conditional probabilities about the genders of
// two-child families: the chance both children are girls given that the
// older one is a girl, and given that at least one is a girl.
package family

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for non-positive family counts.
var ErrInvalidArgument = errors.New("family: invalid argument")

// Rand is the random source families are drawn from.
type Rand interface {
	IntN(n int) int
}

// Kid is the gender of one child.
type Kid int

const (
	Boy Kid = iota
	Girl
)

// String returns "boy" or "girl".
func (k Kid) String() string {
	if k == Girl {
		return "girl"
	}
	return "boy"
}

// RandomKid draws a boy or a girl with equal probability.
func RandomKid(rng Rand) Kid {
	return Kid(rng.IntN(2))
}

// Result holds the tallies of a run.
type Result struct {
	Families   int
	BothGirls  int
	OlderGirl  int
	EitherGirl int
}

// BothGivenOlder estimates P(both girls | older is a girl). Expected 1/2.
func (r Result) BothGivenOlder() float64 {
	if r.OlderGirl == 0 {
		return 0
	}
	return float64(r.BothGirls) / float64(r.OlderGirl)
}

// BothGivenEither estimates P(both girls | at least one girl). Expected 1/3.
func (r Result) BothGivenEither() float64 {
	if r.EitherGirl == 0 {
		return 0
	}
	return float64(r.BothGirls) / float64(r.EitherGirl)
}

const checkEvery = 4096

// Run draws n families of two children.
func Run(ctx context.Context, rng Rand, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: family count must be positive, got %d", ErrInvalidArgument, n)
	}

	res := Result{Families: n}
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("family: stopped after %d of %d families: %w", i, n, err)
			}
		}

		younger := RandomKid(rng)
		older := RandomKid(rng)

		if older == Girl {
			res.OlderGirl++
		}
		if older == Girl && younger == Girl {
			res.BothGirls++
		}
		if older == Girl || younger == Girl {
			res.EitherGirl++
		}
	}
	return res, nil
}
