// Package mediation translates analysis results into writer-facing
// language. Every sentence is assembled from fixed experiential templates,
// then the whole serialized output is scanned against a hard vocabulary
// ban; a single hit fails the run rather than letting a judgment leak.
package mediation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/intent"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/pattern"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/silence"
)

// #region types

// Reflection is the writer-facing unit for one surfaced pattern: a
// question first, then the audience experience behind it.
type Reflection struct {
	Range       pattern.SceneRange `json:"scene_range"`
	Question    string             `json:"question"`
	Experience  string             `json:"experience"`
	Uncertainty string             `json:"uncertainty"`
	Confidence  pattern.Confidence `json:"confidence_band"`
}

// Acknowledgment restates a declared intent whose signals held up.
type Acknowledgment struct {
	Range pattern.SceneRange `json:"scene_range"`
	Label intent.Label       `json:"intent_label"`
	Text  string             `json:"acknowledgment"`
}

// Output is the complete writer-facing result.
type Output struct {
	Reflections        []Reflection     `json:"reflections"`
	Acknowledgments    []Acknowledgment `json:"intent_acknowledgments"`
	SilenceExplanation string           `json:"silence_explanation,omitempty"`
	TotalSurfaced      int              `json:"total_surfaced"`
	TotalSuppressed    int              `json:"total_suppressed"`
	AlertCapApplied    bool             `json:"alert_cap_applied,omitempty"`
}

// ForbiddenLanguageError reports a banned word found in serialized output.
type ForbiddenLanguageError struct {
	Word string
}

func (e *ForbiddenLanguageError) Error() string {
	return fmt.Sprintf("forbidden language in mediated output: %q", e.Word)
}

// #endregion types

// #region mediate

// Mediate builds the writer-facing output. signals feed the failure-mode
// phrasing bias and the alert density cap; they are never quoted.
func Mediate(surfaced []pattern.Pattern, suppressed []intent.Suppressed, sil silence.Assessment,
	signals []signal.Record, cfg config.MediationConfig) (Output, error) {

	capped, capApplied := applyAlertCap(surfaced, len(signals), cfg)

	out := Output{
		Reflections:     make([]Reflection, 0, len(capped)),
		Acknowledgments: make([]Acknowledgment, 0, len(suppressed)),
		TotalSurfaced:   len(capped),
		TotalSuppressed: len(suppressed),
		AlertCapApplied: capApplied,
	}
	for _, p := range capped {
		out.Reflections = append(out.Reflections, newReflection(p, signals, cfg))
	}
	for _, s := range suppressed {
		if s.Reason != intent.ReasonWriterIntent {
			continue
		}
		out.Acknowledgments = append(out.Acknowledgments, acknowledge(s))
	}
	if len(capped) == 0 {
		out.SilenceExplanation = explainSilence(len(suppressed), sil)
	}

	if err := scanOutput(out); err != nil {
		return Output{}, err
	}
	return out, nil
}

func newReflection(p pattern.Pattern, signals []signal.Record, cfg config.MediationConfig) Reflection {
	experience, ok := experienceByType[p.Type]
	if !ok {
		experience = defaultExperience
	}
	experience = biasExperience(p, signals, experience, cfg)

	word, ok := uncertaintyByBand[p.Confidence]
	if !ok {
		word = "may"
	}
	return Reflection{
		Range:       p.Range,
		Question:    question(p.Type, p.Range),
		Experience:  applyUncertainty(experience, word),
		Uncertainty: word,
		Confidence:  p.Confidence,
	}
}

func question(t pattern.Type, r pattern.SceneRange) string {
	aspect, ok := aspectByType[t]
	if !ok {
		aspect = defaultAspect
	}
	return fmt.Sprintf("Is this the level of %s you want the audience to hold through scenes %d-%d?",
		aspect, r.Start, r.End)
}

// applyUncertainty rewrites the modal verb to match the confidence band.
// Templates without the base modal pass through unchanged; the uncertainty
// field still records the band's word.
func applyUncertainty(text, word string) string {
	switch word {
	case "might":
		return strings.ReplaceAll(text, " may ", " might ")
	case "could":
		text = strings.ReplaceAll(text, " may ", ", with lower confidence, could ")
		return strings.ReplaceAll(text, "may ", "With lower confidence, the audience could ")
	default:
		return text
	}
}

// biasExperience swaps in a failure-mode phrasing for the fatigue-family
// patterns when the classifier points clearly one way across the range.
func biasExperience(p pattern.Pattern, signals []signal.Record, experience string, cfg config.MediationConfig) string {
	if p.Type != pattern.SustainedDemand && p.Type != pattern.DegenerativeFatigue {
		return experience
	}
	drift, collapse, n := 0.0, 0.0, 0
	for _, sig := range signals {
		if sig.SceneIndex < p.Range.Start || sig.SceneIndex > p.Range.End {
			continue
		}
		drift += sig.Drift
		collapse += sig.Collapse
		n++
	}
	if n == 0 {
		return experience
	}
	drift /= float64(n)
	collapse /= float64(n)
	switch {
	case drift > cfg.BiasThreshold && drift > collapse:
		return driftExperience
	case collapse > cfg.BiasThreshold:
		return collapseExperience
	default:
		return experience
	}
}

// acknowledge restates the writer's declaration in their own words. The
// range shown is the annotation's, not the suppressed pattern's.
func acknowledge(s intent.Suppressed) Acknowledgment {
	r := s.Intent.Range
	text := fmt.Sprintf("You marked scenes %d-%d as %s. The signals here are consistent with that intent.",
		r.Start, r.End, s.Intent.Label.Display())
	return Acknowledgment{Range: r, Label: s.Intent.Label, Text: text}
}

func explainSilence(suppressedCount int, sil silence.Assessment) string {
	if suppressedCount > 0 {
		return intentAlignedExplanation
	}
	if text, ok := silenceByKey[sil.Key]; ok && sil.Silent {
		return text
	}
	return fallbackExplanation
}

// #endregion mediate

// #region alert cap

// applyAlertCap keeps the surfaced set readable on long scripts: at most
// alert_floor reflections, or one per alert_per_scenes scenes, whichever
// is larger. Highest confidence survives; ties keep detection order.
func applyAlertCap(surfaced []pattern.Pattern, sceneCount int, cfg config.MediationConfig) ([]pattern.Pattern, bool) {
	if sceneCount == 0 {
		sceneCount = 100
	}
	maxAlerts := cfg.AlertFloor
	if byLength := sceneCount / cfg.AlertPerScenes; byLength > maxAlerts {
		maxAlerts = byLength
	}
	if len(surfaced) <= maxAlerts {
		return surfaced, false
	}
	ranked := make([]pattern.Pattern, len(surfaced))
	copy(ranked, surfaced)
	sort.SliceStable(ranked, func(i, j int) bool {
		return confidenceRank(ranked[i].Confidence) > confidenceRank(ranked[j].Confidence)
	})
	return ranked[:maxAlerts], true
}

func confidenceRank(c pattern.Confidence) int {
	switch c {
	case pattern.ConfidenceHigh:
		return 3
	case pattern.ConfidenceMedium:
		return 2
	case pattern.ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// #endregion alert cap

// #region validation

// scanOutput enforces the vocabulary ban on the full serialized output.
// Declared intent labels are the writer's own words, so the closed label
// vocabulary is masked out before scanning.
func scanOutput(out Output) error {
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("serialize mediated output: %w", err)
	}
	text := strings.ToLower(string(raw))
	for _, l := range intent.Labels() {
		text = strings.ReplaceAll(text, string(l), "")
		text = strings.ReplaceAll(text, l.Display(), "")
	}
	for _, word := range forbiddenWords {
		if strings.Contains(text, word) {
			return &ForbiddenLanguageError{Word: word}
		}
	}
	return nil
}

// #endregion validation
