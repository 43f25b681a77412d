// Package failure classifies each scene's attentional failure mode. Two
// leaky accumulators track collapse pressure (overload) and drift pressure
// (stagnation); whichever clearly dominates becomes the primary state.
package failure

import (
	"math"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

// Classify fills the collapse and drift fields of each record and returns a
// new slice. features must be the same sequence the signals were computed
// from.
func Classify(signals []signal.Record, features []feature.SceneVector, cfg config.FailureConfig) []signal.Record {
	if len(signals) == 0 {
		return nil
	}
	out := make([]signal.Record, len(signals))
	prevCollapse, prevDrift := 0.0, 0.0

	for i, rec := range signals {
		boundary := features[i].Structural.EventBoundaryScore

		// Collapse: sustained overload with no relief, amplified when the
		// scene also breaks structure hard.
		pressure := 0.0
		if rec.Effort > cfg.EffortHigh {
			pressure += (rec.Effort - cfg.EffortHigh) * cfg.EffortGain
		}
		if rec.Recovery < cfg.LowRecovery {
			pressure += cfg.LowRecoveryPressure
		}
		if boundary > cfg.ChaosBoundary {
			pressure *= cfg.ChaosGain
		}
		collapse := clamp01(pressure + cfg.CollapseDecay*prevCollapse)
		prevCollapse = collapse

		// Drift: flat, easy stretches with little structural novelty. A
		// genuinely novel scene resets most of the accumulated pressure.
		delta := 0.0
		if i > 0 {
			delta = math.Abs(rec.Effort - signals[i-1].Effort)
		}
		pressure = 0.0
		if delta < cfg.FlatDelta && rec.Effort < cfg.ModerateEffort {
			pressure += cfg.StagnationPressure
		}
		if boundary < cfg.LowNoveltyBoundary {
			pressure += cfg.LowNoveltyPressure
		}
		drift := clamp01(pressure + cfg.DriftDecay*prevDrift)
		if boundary > cfg.NoveltyBoundary || delta > cfg.NoveltyDelta {
			drift *= cfg.NoveltyReset
		}
		prevDrift = drift

		rec.Collapse = collapse
		rec.Drift = drift
		rec.Primary = primaryMode(collapse, drift, cfg.PrimaryThreshold)
		out[i] = rec
	}
	return out
}

func primaryMode(collapse, drift, threshold float64) signal.FailureMode {
	switch {
	case collapse > threshold && collapse > drift:
		return signal.ModeCollapse
	case drift > threshold && drift > collapse:
		return signal.ModeDrift
	default:
		return signal.ModeStable
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
