package silence

import (
	"testing"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

func steady(n int, sig, recovery, collapse, drift float64) []signal.Record {
	out := make([]signal.Record, n)
	for i := range out {
		out[i] = signal.Record{
			SceneIndex: i + 1,
			Signal:     sig,
			Recovery:   recovery,
			Collapse:   collapse,
			Drift:      drift,
		}
	}
	return out
}

func TestSurfacedRunIsNotSilent(t *testing.T) {
	a := Analyze(steady(5, 0.4, 0.2, 0, 0), 2, config.Default().Silence)
	if a.Silent {
		t.Fatal("run with surfaced patterns graded silent")
	}
	if a.Confidence != "" || a.Key != "" {
		t.Fatalf("non-silent run graded anyway: %+v", a)
	}
}

func TestStableContinuityHighConfidence(t *testing.T) {
	a := Analyze(steady(10, 0.4, 0.25, 0.1, 0.1), 0, config.Default().Silence)
	if !a.Silent {
		t.Fatal("quiet run not silent")
	}
	if a.Confidence != BandHigh {
		t.Fatalf("confidence %q, want high", a.Confidence)
	}
	if a.Key != KeyStableContinuity {
		t.Fatalf("key %q, want stable_continuity", a.Key)
	}
	if a.Metrics.MaxSignal != 0.4 || a.Metrics.AvgRecovery != 0.25 {
		t.Fatalf("metrics %+v", a.Metrics)
	}
}

func TestSelfCorrectingMediumConfidence(t *testing.T) {
	// Strain peaks above the high bar but recovery keeps flowing.
	a := Analyze(steady(10, 0.7, 0.2, 0.1, 0.1), 0, config.Default().Silence)
	if a.Confidence != BandMedium {
		t.Fatalf("confidence %q, want medium", a.Confidence)
	}
	if a.Key != KeySelfCorrecting {
		t.Fatalf("key %q, want self_correcting", a.Key)
	}
}

func TestMarginalStrainLowConfidence(t *testing.T) {
	a := Analyze(steady(10, 0.9, 0.05, 0.4, 0.1), 0, config.Default().Silence)
	if a.Confidence != BandLow {
		t.Fatalf("confidence %q, want low", a.Confidence)
	}
	if a.Key != KeyMarginalStrain {
		t.Fatalf("key %q, want marginal_strain", a.Key)
	}
}

func TestDriftOverridesStableKey(t *testing.T) {
	a := Analyze(steady(10, 0.4, 0.2, 0.1, 0.8), 0, config.Default().Silence)
	if a.Confidence != BandHigh {
		t.Fatalf("confidence %q, want high despite drift", a.Confidence)
	}
	if a.Key != KeyStableButDrifting {
		t.Fatalf("key %q, want stable_but_drifting", a.Key)
	}
}

func TestNoDataSilence(t *testing.T) {
	a := Analyze(nil, 0, config.Default().Silence)
	if !a.Silent || a.Confidence != BandLow || a.Key != KeyNoData {
		t.Fatalf("empty run graded %+v", a)
	}
}
