package temporal

import (
	"testing"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

// lightScene aggregates near zero in every group.
func lightScene(idx int) feature.SceneVector {
	return feature.SceneVector{
		SceneIndex:  idx,
		Linguistic:  feature.LinguisticLoad{SentenceCount: 2, MeanSentenceLength: 4, MaxSentenceLength: 6, SentenceLengthVariance: 0.5},
		Dialogue:    feature.DialogueDynamics{DialogueTurns: 1, SpeakerSwitches: 0, TurnVelocity: 0.05},
		Visual:      feature.VisualAbstraction{ActionLineCount: 1, ContinuousActionRuns: 0, VisualDensity: 0.8, VerticalWritingLoad: 0.5},
		Referential: feature.ReferentialMemory{ActiveCharacterCount: 1, CharacterReintroductions: 0, PronounDensity: 0.05},
		Structural:  feature.StructuralChange{EventBoundaryScore: 0.4},
	}
}

// heavyScene aggregates high in every group and earns no recovery credit.
func heavyScene(idx int) feature.SceneVector {
	return feature.SceneVector{
		SceneIndex:  idx,
		Linguistic:  feature.LinguisticLoad{SentenceCount: 60, MeanSentenceLength: 18, MaxSentenceLength: 45, SentenceLengthVariance: 30},
		Dialogue:    feature.DialogueDynamics{DialogueTurns: 30, SpeakerSwitches: 15, TurnVelocity: 0.9},
		Visual:      feature.VisualAbstraction{ActionLineCount: 35, ContinuousActionRuns: 6, VisualDensity: 0.9, VerticalWritingLoad: 12},
		Referential: feature.ReferentialMemory{ActiveCharacterCount: 8, CharacterReintroductions: 4, PronounDensity: 0.7},
		Structural:  feature.StructuralChange{EventBoundaryScore: 0.45},
	}
}

func rampSequence(n int) []feature.SceneVector {
	features := make([]feature.SceneVector, 0, n)
	features = append(features, lightScene(1))
	for i := 2; i <= n; i++ {
		features = append(features, heavyScene(i))
	}
	return features
}

func TestFirstSceneSignalEqualsEffort(t *testing.T) {
	signals := Compute(rampSequence(12), config.Default().Temporal)
	if len(signals) != 12 {
		t.Fatalf("got %d signals, want 12", len(signals))
	}
	if signals[0].Signal != signals[0].Effort {
		t.Fatalf("first scene signal %v != effort %v", signals[0].Signal, signals[0].Effort)
	}
}

func TestComputeEmpty(t *testing.T) {
	if signals := Compute(nil, config.Default().Temporal); signals != nil {
		t.Fatalf("empty input produced %d signals", len(signals))
	}
}

func TestUniformScenesNormalizeToZeroEffort(t *testing.T) {
	features := make([]feature.SceneVector, 8)
	for i := range features {
		features[i] = heavyScene(i + 1)
	}
	signals := Compute(features, config.Default().Temporal)
	for _, sig := range signals {
		if sig.Effort != 0 {
			t.Fatalf("scene %d effort %v, want 0 for degenerate spread", sig.SceneIndex, sig.Effort)
		}
		if sig.Signal != 0 {
			t.Fatalf("scene %d signal %v, want 0", sig.SceneIndex, sig.Signal)
		}
		if sig.Recovery <= 0 {
			t.Fatalf("scene %d recovery %v, want low-effort credit", sig.SceneIndex, sig.Recovery)
		}
	}
}

func TestInvariantsOnRamp(t *testing.T) {
	cfg := config.Default().Temporal
	signals := Compute(rampSequence(16), cfg)
	for _, sig := range signals {
		if sig.Signal < 0 {
			t.Fatalf("scene %d signal %v below zero", sig.SceneIndex, sig.Signal)
		}
		if sig.Recovery < 0 || sig.Recovery > cfg.RecoveryMax {
			t.Fatalf("scene %d recovery %v outside [0, %v]", sig.SceneIndex, sig.Recovery, cfg.RecoveryMax)
		}
	}
}

func TestFatigueWallEngages(t *testing.T) {
	cfg := config.Default().Temporal
	signals := Compute(rampSequence(16), cfg)
	peak := 0.0
	for _, sig := range signals {
		if sig.Signal > peak {
			peak = sig.Signal
		}
	}
	if peak <= cfg.SignalMax {
		t.Fatalf("peak signal %v never crossed the wall at %v", peak, cfg.SignalMax)
	}
	last := signals[len(signals)-2]
	if last.FatigueState != signal.FatigueExtreme {
		t.Fatalf("late-script state %q, want %q at signal %v", last.FatigueState, signal.FatigueExtreme, last.Signal)
	}
}

func TestRecoveryCapBinds(t *testing.T) {
	cfg := config.Default().Temporal
	cfg.Beta = 2.0
	signals := Compute(rampSequence(12), cfg)
	// The light opener has zero effort, so the low-effort channel alone
	// would credit beta * threshold = 0.8 without the cap.
	if got := signals[0].Recovery; got != cfg.RecoveryMax {
		t.Fatalf("recovery %v, want capped at %v", got, cfg.RecoveryMax)
	}
}

func TestEffectiveLambdaBoundaries(t *testing.T) {
	cfg := config.Default().Temporal

	if got := effectiveLambda(0, 100, cfg); got != 0 {
		t.Fatalf("opening scene lambda %v, want 0", got)
	}
	if got, want := effectiveLambda(5, 100, cfg), cfg.Lambda*0.5; got != want {
		t.Fatalf("mid-ramp lambda %v, want %v", got, want)
	}
	if got := effectiveLambda(50, 100, cfg); got != cfg.Lambda {
		t.Fatalf("mid-script lambda %v, want %v", got, cfg.Lambda)
	}
	// Final scene of 100: buffer of 5, deepest release step.
	if got, want := effectiveLambda(99, 100, cfg), cfg.Lambda*(1-cfg.EndingRelease*4.0/5.0); got != want {
		t.Fatalf("final scene lambda %v, want %v", got, want)
	}
	// First scene of the buffer releases nothing yet.
	if got := effectiveLambda(95, 100, cfg); got != cfg.Lambda {
		t.Fatalf("buffer entry lambda %v, want %v", got, cfg.Lambda)
	}
}

func TestEndingBufferOverridesOpeningRamp(t *testing.T) {
	cfg := config.Default().Temporal
	// Scene 6 of 6 sits inside both the opening ramp and the ending
	// buffer; the release schedule wins.
	if got := effectiveLambda(5, 6, cfg); got != cfg.Lambda {
		t.Fatalf("overlapping boundary lambda %v, want %v", got, cfg.Lambda)
	}
}

func TestClassifyFatigueBreakpoints(t *testing.T) {
	cfg := config.Default().Temporal
	cases := []struct {
		s    float64
		want signal.FatigueState
	}{
		{0.2, signal.FatigueNormal},
		{1.49, signal.FatigueNormal},
		{1.5, signal.FatigueElevated},
		{1.99, signal.FatigueElevated},
		{2.0, signal.FatigueHigh},
		{2.99, signal.FatigueHigh},
		{3.0, signal.FatigueExtreme},
		{7.5, signal.FatigueExtreme},
	}
	for _, tc := range cases {
		if got := classifyFatigue(tc.s, cfg); got != tc.want {
			t.Fatalf("classifyFatigue(%v) = %q, want %q", tc.s, got, tc.want)
		}
	}
}
