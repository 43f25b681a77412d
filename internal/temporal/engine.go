// Package temporal implements the attentional accumulation core: per-scene
// effort from normalized feature groups, recovery credits, and a decayed
// running signal with opening and ending attention-budget boundaries.
package temporal

import (
	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

// #region aggregation

// groupScores holds the raw per-group aggregates for one scene before
// normalization. The divisors put heterogeneous counts on a shared scale.
type groupScores struct {
	linguistic  float64
	dialogue    float64
	visual      float64
	referential float64
	structural  float64
}

func aggregate(f feature.SceneVector) groupScores {
	return groupScores{
		linguistic: float64(f.Linguistic.SentenceCount)/100 +
			f.Linguistic.MeanSentenceLength/20 +
			f.Linguistic.SentenceLengthVariance/50,
		dialogue: float64(f.Dialogue.DialogueTurns)/50 +
			float64(f.Dialogue.SpeakerSwitches)/20 +
			f.Dialogue.TurnVelocity,
		visual: float64(f.Visual.ActionLineCount)/50 +
			float64(f.Visual.ContinuousActionRuns)/10 +
			f.Visual.VisualDensity +
			f.Visual.VerticalWritingLoad/20,
		referential: float64(f.Referential.ActiveCharacterCount)/10 +
			float64(f.Referential.CharacterReintroductions)/5 +
			f.Referential.PronounDensity,
		structural: f.Structural.EventBoundaryScore / 50,
	}
}

// normalize min-max scales each group across the whole sequence. A group
// with no spread normalizes to zero everywhere rather than dividing by it.
func normalize(features []feature.SceneVector) []groupScores {
	raw := make([]groupScores, len(features))
	for i, f := range features {
		raw[i] = aggregate(f)
	}

	fields := []func(*groupScores) *float64{
		func(g *groupScores) *float64 { return &g.linguistic },
		func(g *groupScores) *float64 { return &g.dialogue },
		func(g *groupScores) *float64 { return &g.visual },
		func(g *groupScores) *float64 { return &g.referential },
		func(g *groupScores) *float64 { return &g.structural },
	}
	for _, field := range fields {
		lo, hi := *field(&raw[0]), *field(&raw[0])
		for i := range raw {
			v := *field(&raw[i])
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		span := hi - lo
		if span <= 0 {
			span = 1
		}
		for i := range raw {
			p := field(&raw[i])
			*p = (*p - lo) / span
		}
	}
	return raw
}

// #endregion aggregation

// #region engine

// Compute runs the full temporal simulation over a validated feature
// sequence. Strictly left to right; scene i+1 never influences scene i.
func Compute(features []feature.SceneVector, cfg config.TemporalConfig) []signal.Record {
	if len(features) == 0 {
		return nil
	}
	norms := normalize(features)
	n := len(features)
	out := make([]signal.Record, 0, n)

	prev := 0.0
	for i, f := range features {
		// 1. Micro pass: intra-scene structure scales effort and recovery.
		mods := microRefine(f.Micro, cfg.Micro)

		// 2. Effort: weighted blend of the normalized groups.
		effort := weighted(norms[i], cfg.Weights) * mods.effort

		// 3. Recovery: channel credits, scaled then capped.
		recovery := recoveryCredit(f, effort, cfg) * mods.recovery
		recovery = clamp(recovery, 0, cfg.RecoveryMax)

		// 4. Accumulate: decayed carry plus effort minus recovery.
		var s float64
		if i == 0 {
			s = effort
		} else {
			s = effort + effectiveLambda(i, n, cfg)*prev - recovery
		}

		// 5. Fatigue wall: superlinear growth above the saturation point.
		if excess := s - cfg.SignalMax; excess > 0 {
			s += cfg.WallAlpha * excess * excess
		}
		if s < 0 {
			s = 0
		}

		out = append(out, signal.Record{
			SceneIndex:       f.SceneIndex,
			Effort:           effort,
			Signal:           s,
			Recovery:         recovery,
			FatigueState:     classifyFatigue(s, cfg),
			EffortModifier:   mods.effort,
			RecoveryModifier: mods.recovery,
		})
		prev = s
	}
	return out
}

func weighted(g groupScores, w config.WeightConfig) float64 {
	return g.linguistic*w.Linguistic +
		g.dialogue*w.Dialogue +
		g.visual*w.Visual +
		g.referential*w.Referential +
		g.structural*w.Structural
}

// recoveryCredit sums the three recovery channels. Each channel is bounded
// on its own; the caller applies the micro modifier and the global cap.
func recoveryCredit(f feature.SceneVector, effort float64, cfg config.TemporalConfig) float64 {
	r := 0.0
	if effort < cfg.EffortThreshold {
		r += cfg.Beta * (cfg.EffortThreshold - effort)
	}
	if b := f.Structural.EventBoundaryScore; b > cfg.BoundaryThreshold {
		r += cfg.Gamma * clamp(b/cfg.BoundaryScale, 0, 1)
	}
	if f.Visual.VisualDensity < cfg.DensityThreshold {
		r += cfg.Delta
	}
	return r
}

// effectiveLambda applies the attention budget boundaries. The opening ramp
// scales carry-over up from zero; inside the ending buffer the release
// schedule takes over whatever the ramp would have said.
func effectiveLambda(i, n int, cfg config.TemporalConfig) float64 {
	lambda := cfg.Lambda
	if i < cfg.OpeningScenes {
		lambda = cfg.Lambda * clamp(float64(i)/float64(cfg.OpeningScenes), 0, 1)
	}
	ending := int(float64(n) * cfg.EndingFraction)
	if ending < 1 {
		ending = 1
	}
	if remaining := n - i; remaining <= ending {
		reduction := cfg.EndingRelease * float64(ending-remaining) / float64(ending)
		lambda = cfg.Lambda * (1 - reduction)
	}
	return lambda
}

func classifyFatigue(s float64, cfg config.TemporalConfig) signal.FatigueState {
	switch {
	case s < cfg.StateElevated:
		return signal.FatigueNormal
	case s < cfg.StateHigh:
		return signal.FatigueElevated
	case s < cfg.StateExtreme:
		return signal.FatigueHigh
	default:
		return signal.FatigueExtreme
	}
}

// #endregion engine

// #region helpers

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
