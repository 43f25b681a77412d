package feature

import (
	"fmt"
	"math"
)

// ValidationError reports a fatal input-contract violation. The run that
// produced it must be rejected, never silently repaired.
type ValidationError struct {
	SceneIndex int
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scene %d: %s", e.SceneIndex, e.Reason)
}

// ValidateSequence checks that vectors form a consecutive 1-based sequence
// and that every metric is finite and non-negative.
func ValidateSequence(features []SceneVector) error {
	if len(features) == 0 {
		return &ValidationError{Reason: "empty feature sequence"}
	}
	for i, f := range features {
		if want := i + 1; f.SceneIndex != want {
			return &ValidationError{
				SceneIndex: f.SceneIndex,
				Reason:     fmt.Sprintf("scene index out of sequence, want %d", want),
			}
		}
		for _, m := range f.metrics() {
			if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
				return &ValidationError{SceneIndex: f.SceneIndex, Reason: m.name + " is not finite"}
			}
			if m.value < 0 {
				return &ValidationError{SceneIndex: f.SceneIndex, Reason: m.name + " is negative"}
			}
		}
		for j, ev := range f.Micro {
			if ev.WordCount < 0 {
				return &ValidationError{
					SceneIndex: f.SceneIndex,
					Reason:     fmt.Sprintf("micro event %d has negative word count", j),
				}
			}
		}
	}
	return nil
}

type metric struct {
	name  string
	value float64
}

func (f SceneVector) metrics() []metric {
	return []metric{
		{"sentence_count", float64(f.Linguistic.SentenceCount)},
		{"mean_sentence_length", f.Linguistic.MeanSentenceLength},
		{"max_sentence_length", float64(f.Linguistic.MaxSentenceLength)},
		{"sentence_length_variance", f.Linguistic.SentenceLengthVariance},
		{"dialogue_turns", float64(f.Dialogue.DialogueTurns)},
		{"speaker_switches", float64(f.Dialogue.SpeakerSwitches)},
		{"turn_velocity", f.Dialogue.TurnVelocity},
		{"monologue_runs", float64(f.Dialogue.MonologueRuns)},
		{"action_line_count", float64(f.Visual.ActionLineCount)},
		{"continuous_action_runs", float64(f.Visual.ContinuousActionRuns)},
		{"visual_density", f.Visual.VisualDensity},
		{"vertical_writing_load", f.Visual.VerticalWritingLoad},
		{"active_character_count", float64(f.Referential.ActiveCharacterCount)},
		{"character_reintroductions", float64(f.Referential.CharacterReintroductions)},
		{"pronoun_density", f.Referential.PronounDensity},
		{"event_boundary_score", f.Structural.EventBoundaryScore},
	}
}
