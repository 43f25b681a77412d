// Package pattern detects persistent attentional phenomena over scene
// ranges. Single-scene spikes are never reported; every detector demands
// persistence before it speaks.
package pattern

// Type enumerates the detectable pattern kinds.
type Type string

const (
	SustainedDemand     Type = "sustained_demand"
	LimitedRecovery     Type = "limited_recovery"
	SurpriseCluster     Type = "surprise_cluster"
	SequenceRepetition  Type = "sequence_repetition"
	ConstructiveStrain  Type = "constructive_strain"
	DegenerativeFatigue Type = "degenerative_fatigue"
)

// Confidence is the evidence band attached to a pattern.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Downgrade returns the band one level down. Low stays low.
func (c Confidence) Downgrade() Confidence {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// SceneRange is an inclusive range of 1-based scene indices.
type SceneRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether two closed ranges share at least one scene.
func (r SceneRange) Overlaps(o SceneRange) bool {
	return !(r.End < o.Start || o.End < r.Start)
}

// Covers reports whether r fully contains o.
func (r SceneRange) Covers(o SceneRange) bool {
	return r.Start <= o.Start && r.End >= o.End
}

// Pattern is one detected persistent phenomenon.
type Pattern struct {
	Type        Type               `json:"pattern_type"`
	Range       SceneRange         `json:"scene_range"`
	Confidence  Confidence         `json:"confidence_band"`
	Description string             `json:"description"`
	Metrics     map[string]float64 `json:"supporting_metrics"`
	Note        string             `json:"note,omitempty"`
}
