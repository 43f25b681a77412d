// Package signal defines the per-scene attentional record shared by every
// stage of the analysis pipeline. Stages never mutate a record in place;
// each pass returns a new slice with its own fields filled in.
package signal

// #region enums

// FatigueState labels accumulated signal against the fixed state breakpoints.
type FatigueState string

const (
	FatigueNormal   FatigueState = "normal"
	FatigueElevated FatigueState = "elevated"
	FatigueHigh     FatigueState = "high"
	FatigueExtreme  FatigueState = "extreme"
)

// FailureMode is the primary attentional failure mode for a scene.
type FailureMode string

const (
	ModeStable   FailureMode = "stable"
	ModeCollapse FailureMode = "collapse"
	ModeDrift    FailureMode = "drift"
)

// #endregion enums

// #region record

// Record is the per-scene attentional state. The temporal core fills the
// base fields, the fatigue tracker adjusts Signal and sets the reserve
// fields, and the failure classifier sets the likelihood fields.
type Record struct {
	SceneIndex int `json:"scene_index"`

	Effort       float64      `json:"instantaneous_effort"`
	Signal       float64      `json:"attentional_signal"`
	Recovery     float64      `json:"recovery_credit"`
	FatigueState FatigueState `json:"fatigue_state"`

	EffortModifier   float64 `json:"effort_modifier"`
	RecoveryModifier float64 `json:"recovery_modifier"`

	FatigueReserve   float64 `json:"fatigue_reserve"`
	SustainedPenalty float64 `json:"sustained_fatigue_penalty"`

	Collapse float64     `json:"collapse_likelihood"`
	Drift    float64     `json:"drift_likelihood"`
	Primary  FailureMode `json:"primary_state"`
}

// #endregion record
