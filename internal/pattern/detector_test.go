package pattern

import (
	"math"
	"testing"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

func detect(t *testing.T, sigValues []float64, recovery float64, boundaries []float64) []Pattern {
	t.Helper()
	signals := make([]signal.Record, len(sigValues))
	features := make([]feature.SceneVector, len(sigValues))
	for i, v := range sigValues {
		signals[i] = signal.Record{SceneIndex: i + 1, Signal: v, Recovery: recovery}
		boundary := 10.0
		if boundaries != nil {
			boundary = boundaries[i]
		}
		features[i] = feature.SceneVector{
			SceneIndex: i + 1,
			Structural: feature.StructuralChange{EventBoundaryScore: boundary},
		}
	}
	return NewDetector(signals, features, config.Default().Pattern).Detect()
}

func byType(patterns []Pattern, pt Type) []Pattern {
	var out []Pattern
	for _, p := range patterns {
		if p.Type == pt {
			out = append(out, p)
		}
	}
	return out
}

func TestDetectNothingOnCalmSequence(t *testing.T) {
	patterns := detect(t, []float64{0.4, 0.5, 0.45, 0.5, 0.4, 0.5}, 0.3, nil)
	if len(patterns) != 0 {
		t.Fatalf("calm sequence produced %d patterns: %+v", len(patterns), patterns)
	}
}

func TestSustainedDemandRun(t *testing.T) {
	patterns := detect(t, []float64{1.0, 1.6, 1.7, 1.8, 1.0}, 0.25, nil)
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1: %+v", len(patterns), patterns)
	}
	p := patterns[0]
	if p.Type != SustainedDemand {
		t.Fatalf("type %q, want sustained_demand", p.Type)
	}
	if p.Range != (SceneRange{Start: 2, End: 4}) {
		t.Fatalf("range %+v, want 2-4", p.Range)
	}
	if p.Confidence != ConfidenceLow {
		t.Fatalf("minimum-length run confidence %q, want low", p.Confidence)
	}
	if p.Metrics["scene_count"] != 3 || p.Metrics["max_signal"] != 1.8 {
		t.Fatalf("metrics %+v", p.Metrics)
	}
}

func TestShortSpikeIgnored(t *testing.T) {
	patterns := detect(t, []float64{1.0, 1.6, 1.7, 1.0, 1.0}, 0.25, nil)
	if len(patterns) != 0 {
		t.Fatalf("two-scene spike reported: %+v", patterns)
	}
}

func TestSustainedDemandRunToEnd(t *testing.T) {
	patterns := detect(t, []float64{1.0, 1.6, 1.7, 1.8}, 0.25, nil)
	demand := byType(patterns, SustainedDemand)
	if len(demand) != 1 {
		t.Fatalf("run reaching the final scene missed: %+v", patterns)
	}
	if demand[0].Range != (SceneRange{Start: 2, End: 4}) {
		t.Fatalf("range %+v, want 2-4", demand[0].Range)
	}
}

func TestLimitedRecoveryRun(t *testing.T) {
	patterns := detect(t, []float64{0.5, 1.2, 1.2, 1.2}, 0.1, nil)
	limited := byType(patterns, LimitedRecovery)
	if len(limited) != 1 {
		t.Fatalf("got %+v, want one limited_recovery", patterns)
	}
	p := limited[0]
	if p.Range != (SceneRange{Start: 2, End: 4}) {
		t.Fatalf("range %+v, want 2-4", p.Range)
	}
	if math.Abs(p.Metrics["avg_recovery"]-0.1) > 1e-12 {
		t.Fatalf("avg_recovery %v, want 0.1", p.Metrics["avg_recovery"])
	}
	if p.Confidence != ConfidenceLow {
		t.Fatalf("confidence %q, want low at minimum length", p.Confidence)
	}
}

func TestSurpriseClusterWindows(t *testing.T) {
	patterns := detect(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5}, 0.3, []float64{30, 30, 30, 10, 10})
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1: %+v", len(patterns), patterns)
	}
	p := patterns[0]
	if p.Type != SurpriseCluster || p.Range != (SceneRange{Start: 1, End: 5}) {
		t.Fatalf("got %+v", p)
	}
	if p.Metrics["high_boundary_count"] != 3 {
		t.Fatalf("high_boundary_count %v, want 3", p.Metrics["high_boundary_count"])
	}
}

func TestSurpriseClusterBelowCount(t *testing.T) {
	patterns := detect(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5}, 0.3, []float64{30, 30, 10, 10, 10})
	if len(patterns) != 0 {
		t.Fatalf("two breaks in five scenes reported: %+v", patterns)
	}
}

func TestSurpriseClusterOverlappingWindows(t *testing.T) {
	patterns := detect(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, 0.3, []float64{30, 30, 30, 30, 10, 10})
	clusters := byType(patterns, SurpriseCluster)
	if len(clusters) != 2 {
		t.Fatalf("got %d cluster windows, want 2: %+v", len(clusters), clusters)
	}
}

func TestConstructiveStrainWindow(t *testing.T) {
	patterns := detect(t, []float64{1.6, 1.6, 1.6, 1.6, 1.6}, 0.25, nil)
	strain := byType(patterns, ConstructiveStrain)
	if len(strain) != 1 {
		t.Fatalf("got %+v, want one constructive_strain", patterns)
	}
	if strain[0].Confidence != ConfidenceHigh {
		t.Fatalf("steady five-scene window confidence %q, want high", strain[0].Confidence)
	}
	// The same stretch also reads as sustained demand; both surface.
	if len(byType(patterns, SustainedDemand)) != 1 {
		t.Fatalf("sustained_demand missing from %+v", patterns)
	}
}

func TestDegenerativeFatigueWindow(t *testing.T) {
	values := []float64{1.2, 1.3, 1.4, 1.8, 1.9, 2.0, 2.1}
	patterns := detect(t, values, 0.05, nil)
	degen := byType(patterns, DegenerativeFatigue)
	if len(degen) != 1 {
		t.Fatalf("got %+v, want one degenerative_fatigue", patterns)
	}
	p := degen[0]
	if p.Range != (SceneRange{Start: 1, End: 7}) {
		t.Fatalf("range %+v, want 1-7", p.Range)
	}
	if p.Metrics["start_signal"] != 1.2 || p.Metrics["end_signal"] != 2.1 {
		t.Fatalf("metrics %+v", p.Metrics)
	}
	if p.Confidence != ConfidenceHigh {
		t.Fatalf("confidence %q, want high", p.Confidence)
	}
}

func TestConstructiveStrainNeedsRecovery(t *testing.T) {
	patterns := detect(t, []float64{1.6, 1.6, 1.6, 1.6, 1.6}, 0.05, nil)
	if len(byType(patterns, ConstructiveStrain)) != 0 {
		t.Fatalf("strain without recovery labeled constructive: %+v", patterns)
	}
}

func TestVolatileEvidenceDowngrades(t *testing.T) {
	values := []float64{1.6, 3.5, 1.6, 3.6, 1.7, 3.8}
	patterns := detect(t, values, 0.25, nil)
	demand := byType(patterns, SustainedDemand)
	if len(demand) != 1 {
		t.Fatalf("got %+v, want one sustained_demand", patterns)
	}
	if demand[0].Confidence != ConfidenceMedium {
		t.Fatalf("volatile six-scene run confidence %q, want medium", demand[0].Confidence)
	}
}

func TestSequenceRepetitionStaysQuiet(t *testing.T) {
	values := []float64{1.6, 1.6, 1.6, 1.6, 1.6, 1.6}
	patterns := detect(t, values, 0.25, nil)
	if len(byType(patterns, SequenceRepetition)) != 0 {
		t.Fatalf("sequence_repetition reported without an implementation: %+v", patterns)
	}
}

func TestDetectEmpty(t *testing.T) {
	patterns := NewDetector(nil, nil, config.Default().Pattern).Detect()
	if len(patterns) != 0 {
		t.Fatalf("empty input produced %+v", patterns)
	}
}
