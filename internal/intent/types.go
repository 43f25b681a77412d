// Package intent applies writer-declared intent annotations to detected
// patterns: a pattern covered by a matching declaration is suppressed from
// the surfaced set, never from the analysis record.
package intent

import (
	"strings"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/pattern"
)

// Label is a writer-declared intent from the closed vocabulary.
type Label string

const (
	IntentionallyExhausting   Label = "intentionally_exhausting"
	IntentionallyConfusing    Label = "intentionally_confusing"
	ShouldFeelSmooth          Label = "should_feel_smooth"
	ShouldFeelTense           Label = "should_feel_tense"
	ExperimentalAntiNarrative Label = "experimental_anti_narrative"
)

// ReasonWriterIntent marks suppressions gated by a declared intent.
const ReasonWriterIntent = "writer_intent"

var allowedLabels = []Label{
	IntentionallyExhausting,
	IntentionallyConfusing,
	ShouldFeelSmooth,
	ShouldFeelTense,
	ExperimentalAntiNarrative,
}

// Labels returns the closed vocabulary in declaration order.
func Labels() []Label {
	out := make([]Label, len(allowedLabels))
	copy(out, allowedLabels)
	return out
}

// Valid reports whether l belongs to the closed vocabulary.
func (l Label) Valid() bool {
	for _, a := range allowedLabels {
		if l == a {
			return true
		}
	}
	return false
}

// Display returns the label with underscores opened for writer-facing text.
func (l Label) Display() string {
	return strings.ReplaceAll(string(l), "_", " ")
}

// Annotation is one writer declaration over an inclusive scene range.
type Annotation struct {
	Range pattern.SceneRange `json:"scene_range"`
	Label Label              `json:"intent_label"`
	Note  string             `json:"writer_note,omitempty"`
}

// Reference names the annotation behind a suppression record.
type Reference struct {
	Label Label              `json:"label"`
	Range pattern.SceneRange `json:"scene_range"`
	Note  string             `json:"writer_note,omitempty"`
}

// Suppressed is the audit record for one suppressed pattern. The original
// pattern rides along untouched.
type Suppressed struct {
	Type          pattern.Type       `json:"pattern_type"`
	Range         pattern.SceneRange `json:"scene_range"`
	Reason        string             `json:"suppressed_reason"`
	Intent        Reference          `json:"intent_reference"`
	AlignmentNote string             `json:"alignment_note"`
	Preserved     bool               `json:"internal_analysis_preserved"`
	Original      pattern.Pattern    `json:"original_pattern"`
}

// ConflictWarning flags two overlapping declarations with different labels.
type ConflictWarning struct {
	Range   pattern.SceneRange `json:"scene_range"`
	Labels  [2]Label           `json:"labels"`
	Message string             `json:"message"`
}

// Result partitions detected patterns under the writer's declarations.
type Result struct {
	Surfaced   []pattern.Pattern `json:"surfaced_patterns"`
	Suppressed []Suppressed      `json:"suppressed_patterns"`
	Conflicts  []ConflictWarning `json:"conflict_warnings,omitempty"`
}
