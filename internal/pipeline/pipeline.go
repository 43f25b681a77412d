// Package pipeline runs one full analysis pass in fixed stage order:
// temporal load, fatigue reserve, failure classification, pattern
// detection, intent gating, silence assessment, mediation.
//
// Run is deterministic: identical features, annotations, and config
// produce an identical Result. Run-scoped identity (ids, timestamps)
// belongs to the archive layer, not here.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/failure"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/fatigue"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/intent"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/mediation"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/pattern"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/silence"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/temporal"
)

// Result is the complete outcome of one analysis pass. Surfaced and
// Suppressed hold the full gated sets; the writer view inside Mediated
// may be shorter when the alert cap applies.
type Result struct {
	SceneCount int                      `json:"scene_count"`
	Signals    []signal.Record          `json:"scene_signals"`
	Patterns   []pattern.Pattern        `json:"detected_patterns"`
	Surfaced   []pattern.Pattern        `json:"surfaced_patterns"`
	Suppressed []intent.Suppressed      `json:"suppressed_patterns"`
	Conflicts  []intent.ConflictWarning `json:"conflict_warnings,omitempty"`
	Silence    silence.Assessment       `json:"silence"`
	Mediated   mediation.Output         `json:"writer_view"`
}

// Run executes the full pass. The trace id appears in log lines only.
func Run(features []feature.SceneVector, annotations []intent.Annotation, cfg config.Config) (Result, error) {
	start := time.Now()
	runID := uuid.New().String()

	// 1. Validate up front; every later stage assumes clean input.
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("validate config: %w", err)
	}
	if err := feature.ValidateSequence(features); err != nil {
		return Result{}, fmt.Errorf("validate features: %w", err)
	}

	// 2. Signal chain: attentional load, long-range reserve, failure modes.
	signals := temporal.Compute(features, cfg.Temporal)
	signals = fatigue.Apply(signals, cfg.Fatigue)
	signals = failure.Classify(signals, features, cfg.Failure)

	// 3. Persistent patterns over the finished signal sequence.
	patterns := pattern.NewDetector(signals, features, cfg.Pattern).Detect()

	// 4. Declared intent gates what reaches the writer.
	gated := intent.Apply(patterns, annotations)

	// 5. Grade the engine's own silence before wording anything.
	sil := silence.Analyze(signals, len(gated.Surfaced), cfg.Silence)

	// 6. Mediate into writer-facing language; a vocabulary hit fails the run.
	mediated, err := mediation.Mediate(gated.Surfaced, gated.Suppressed, sil, signals, cfg.Mediation)
	if err != nil {
		return Result{}, fmt.Errorf("mediate output: %w", err)
	}

	log.Printf("[PIPE] run %s: scenes=%d patterns=%d surfaced=%d suppressed=%d conflicts=%d silent=%v elapsed=%dms",
		runID, len(features), len(patterns), len(gated.Surfaced), len(gated.Suppressed),
		len(gated.Conflicts), sil.Silent, time.Since(start).Milliseconds())

	return Result{
		SceneCount: len(features),
		Signals:    signals,
		Patterns:   patterns,
		Surfaced:   gated.Surfaced,
		Suppressed: gated.Suppressed,
		Conflicts:  gated.Conflicts,
		Silence:    sil,
		Mediated:   mediated,
	}, nil
}
