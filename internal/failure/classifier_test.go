package failure

import (
	"testing"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

func classifyCase(t *testing.T, efforts []float64, recovery float64, boundaries []float64) []signal.Record {
	t.Helper()
	if len(efforts) != len(boundaries) {
		t.Fatal("bad test case")
	}
	signals := make([]signal.Record, len(efforts))
	features := make([]feature.SceneVector, len(efforts))
	for i := range efforts {
		signals[i] = signal.Record{SceneIndex: i + 1, Effort: efforts[i], Recovery: recovery, Signal: 1}
		features[i] = feature.SceneVector{
			SceneIndex: i + 1,
			Structural: feature.StructuralChange{EventBoundaryScore: boundaries[i]},
		}
	}
	return Classify(signals, features, config.Default().Failure)
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestClassifyEmpty(t *testing.T) {
	if out := Classify(nil, nil, config.Default().Failure); out != nil {
		t.Fatalf("empty input produced %d records", len(out))
	}
}

func TestOverloadBuildsCollapse(t *testing.T) {
	out := classifyCase(t, flat(8, 0.9), 0.0, flat(8, 30))
	for _, rec := range out {
		if rec.Collapse < 0 || rec.Collapse > 1 {
			t.Fatalf("scene %d collapse %v outside [0, 1]", rec.SceneIndex, rec.Collapse)
		}
		if rec.Primary != signal.ModeCollapse {
			t.Fatalf("scene %d primary %q, want collapse", rec.SceneIndex, rec.Primary)
		}
		if rec.Drift != 0 {
			t.Fatalf("scene %d drift %v, want 0 for varied high effort", rec.SceneIndex, rec.Drift)
		}
	}
	if last := out[len(out)-1].Collapse; last != 1 {
		t.Fatalf("sustained overload saturates at %v, want 1", last)
	}
}

func TestStagnationBuildsDrift(t *testing.T) {
	out := classifyCase(t, flat(8, 0.3), 0.2, flat(8, 10))
	for i := 1; i < len(out); i++ {
		if out[i].Drift <= out[i-1].Drift {
			t.Fatalf("drift not rising: scene %d %v after %v", i+1, out[i].Drift, out[i-1].Drift)
		}
	}
	last := out[len(out)-1]
	if last.Primary != signal.ModeDrift {
		t.Fatalf("late primary %q at drift %v, want drift", last.Primary, last.Drift)
	}
	if last.Collapse != 0 {
		t.Fatalf("collapse %v under rested stagnation, want 0", last.Collapse)
	}
}

func TestNoveltyResetsDrift(t *testing.T) {
	boundaries := flat(8, 10)
	boundaries[5] = 80
	out := classifyCase(t, flat(8, 0.3), 0.2, boundaries)
	before, at := out[4], out[5]
	if at.Drift >= before.Drift {
		t.Fatalf("novel scene drift %v did not reset from %v", at.Drift, before.Drift)
	}
	if at.Primary != signal.ModeStable {
		t.Fatalf("primary %q right after reset, want stable", at.Primary)
	}
	// The reset value seeds the next scene, so pressure rebuilds slowly.
	if out[6].Drift >= before.Drift {
		t.Fatalf("drift %v rebuilt too fast after reset", out[6].Drift)
	}
}

func TestChaosAmplifiesCollapse(t *testing.T) {
	calm := classifyCase(t, []float64{0.9}, 0.0, []float64{30})
	chaotic := classifyCase(t, []float64{0.9}, 0.0, []float64{80})
	if chaotic[0].Collapse <= calm[0].Collapse {
		t.Fatalf("chaotic collapse %v not above calm %v", chaotic[0].Collapse, calm[0].Collapse)
	}
}

func TestBalancedSceneStaysStable(t *testing.T) {
	out := classifyCase(t, []float64{0.55}, 0.3, []float64{40})
	if out[0].Primary != signal.ModeStable {
		t.Fatalf("primary %q, want stable", out[0].Primary)
	}
	if out[0].Collapse != 0 || out[0].Drift != 0 {
		t.Fatalf("pressures %v/%v, want zero", out[0].Collapse, out[0].Drift)
	}
}
