package trial

import "math"

// Result summarises one trial run.
type Result struct {
	Strategy Strategy
	Doors    int
	Trials   int
	Seed     int64
	Rounds   int
	Wins     int
}

// SuccessRate returns wins per completed round, 0 when nothing was played.
func (r Result) SuccessRate() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Rounds)
}

// StdError returns the standard error of the success rate.
func (r Result) StdError() float64 {
	if r.Rounds == 0 {
		return 0
	}
	p := r.SuccessRate()
	return math.Sqrt(p * (1 - p) / float64(r.Rounds))
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for the
// success rate, clamped to [0, 1].
func (r Result) ConfidenceInterval95() (float64, float64) {
	p := r.SuccessRate()
	margin := 1.96 * r.StdError()
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// Expected returns the theoretical success rate for the run's strategy.
func (r Result) Expected() float64 {
	return r.Strategy.Expected(r.Doors)
}
