package config

import (
	"math"
	"math/rand"
)

// Perturbed returns a copy with the accumulation constants jittered by a
// multiplicative Gaussian factor of the given magnitude. The receiver is
// untouched; jittered values stay inside their valid ranges.
func (c Config) Perturbed(rng *rand.Rand, magnitude float64) Config {
	out := c
	jitter := func(v float64) float64 {
		return v * (1 + magnitude*rng.NormFloat64())
	}
	out.Temporal.Lambda = clampRange(jitter(c.Temporal.Lambda), 0.01, 0.99)
	out.Temporal.Beta = math.Max(0, jitter(c.Temporal.Beta))
	out.Temporal.Gamma = math.Max(0, jitter(c.Temporal.Gamma))
	out.Temporal.Delta = math.Max(0, jitter(c.Temporal.Delta))
	out.Temporal.EffortThreshold = clampRange(jitter(c.Temporal.EffortThreshold), 0.05, 0.95)
	out.Fatigue.AccumulationRate = clampRange(jitter(c.Fatigue.AccumulationRate), 0, 1)
	return out
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
