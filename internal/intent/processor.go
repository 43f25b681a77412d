package intent

import (
	"fmt"
	"strings"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/pattern"
)

// Validate filters annotations down to the closed vocabulary. Unknown
// labels and inverted ranges drop silently; a writer typo must never abort
// an analysis run.
func Validate(annotations []Annotation) []Annotation {
	valid := make([]Annotation, 0, len(annotations))
	for _, a := range annotations {
		if !a.Label.Valid() {
			continue
		}
		if a.Range.Start > a.Range.End {
			continue
		}
		valid = append(valid, a)
	}
	return valid
}

// Apply partitions patterns into surfaced and suppressed under the
// validated annotations. The first annotation overlapping a pattern gates
// it; full coverage suppresses the whole pattern, partial coverage
// suppresses the overlap and re-surfaces the remainder one confidence
// level down.
func Apply(patterns []pattern.Pattern, annotations []Annotation) Result {
	valid := Validate(annotations)
	res := Result{
		Surfaced:   []pattern.Pattern{},
		Suppressed: []Suppressed{},
		Conflicts:  conflicts(valid),
	}

	for _, p := range patterns {
		ann, ok := firstOverlap(p.Range, valid)
		if !ok {
			res.Surfaced = append(res.Surfaced, p)
			continue
		}
		if ann.Range.Covers(p.Range) {
			res.Suppressed = append(res.Suppressed, suppress(p, ann, p.Range))
			continue
		}
		overlap := intersect(p.Range, ann.Range)
		res.Suppressed = append(res.Suppressed, suppress(p, ann, overlap))
		if rem, ok := remainder(p.Range, overlap); ok {
			res.Surfaced = append(res.Surfaced, downgraded(p, rem))
		}
	}
	return res
}

func firstOverlap(r pattern.SceneRange, annotations []Annotation) (Annotation, bool) {
	for _, a := range annotations {
		if a.Range.Overlaps(r) {
			return a, true
		}
	}
	return Annotation{}, false
}

func intersect(a, b pattern.SceneRange) pattern.SceneRange {
	out := a
	if b.Start > out.Start {
		out.Start = b.Start
	}
	if b.End < out.End {
		out.End = b.End
	}
	return out
}

// remainder returns the uncovered part of p outside the overlap. When both
// sides stick out, the leading side wins; the analysis reads left to right.
func remainder(p, overlap pattern.SceneRange) (pattern.SceneRange, bool) {
	if overlap.Start > p.Start {
		return pattern.SceneRange{Start: p.Start, End: overlap.Start - 1}, true
	}
	if overlap.End < p.End {
		return pattern.SceneRange{Start: overlap.End + 1, End: p.End}, true
	}
	return pattern.SceneRange{}, false
}

func suppress(p pattern.Pattern, ann Annotation, covered pattern.SceneRange) Suppressed {
	note := fmt.Sprintf("Writer marked scenes %d-%d as %s. Detected %s pattern (scenes %d-%d) aligns with declared intent.",
		ann.Range.Start, ann.Range.End, ann.Label.Display(),
		displayType(p.Type), p.Range.Start, p.Range.End)
	return Suppressed{
		Type:          p.Type,
		Range:         covered,
		Reason:        ReasonWriterIntent,
		Intent:        Reference{Label: ann.Label, Range: ann.Range, Note: ann.Note},
		AlignmentNote: note,
		Preserved:     true,
		Original:      p,
	}
}

func downgraded(p pattern.Pattern, rem pattern.SceneRange) pattern.Pattern {
	out := p
	out.Range = rem
	out.Confidence = p.Confidence.Downgrade()
	out.Note = "Confidence downgraded due to partial intent coverage"
	out.Metrics = make(map[string]float64, len(p.Metrics))
	for k, v := range p.Metrics {
		out.Metrics[k] = v
	}
	return out
}

func displayType(t pattern.Type) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// conflicts reports every pair of validated annotations whose ranges
// overlap under different labels. The declarations still apply in order;
// the warning only asks the writer to untangle them.
func conflicts(annotations []Annotation) []ConflictWarning {
	var warnings []ConflictWarning
	for i := 0; i < len(annotations); i++ {
		for j := i + 1; j < len(annotations); j++ {
			a, b := annotations[i], annotations[j]
			if a.Label == b.Label || !a.Range.Overlaps(b.Range) {
				continue
			}
			warnings = append(warnings, ConflictWarning{
				Range:   intersect(a.Range, b.Range),
				Labels:  [2]Label{a.Label, b.Label},
				Message: "overlapping scene ranges declare different intents",
			})
		}
	}
	return warnings
}
