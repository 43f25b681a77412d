// Package feature defines the per-scene feature vector consumed by the
// analysis pipeline. Vectors arrive pre-extracted; nothing in this module
// parses screenplay text.
package feature

// #region groups

// LinguisticLoad captures sentence-level reading effort.
type LinguisticLoad struct {
	SentenceCount          int     `json:"sentence_count"`
	MeanSentenceLength     float64 `json:"mean_sentence_length"`
	MaxSentenceLength      int     `json:"max_sentence_length"`
	SentenceLengthVariance float64 `json:"sentence_length_variance"`
}

// DialogueDynamics captures conversational pacing.
type DialogueDynamics struct {
	DialogueTurns   int     `json:"dialogue_turns"`
	SpeakerSwitches int     `json:"speaker_switches"`
	TurnVelocity    float64 `json:"turn_velocity"`
	MonologueRuns   int     `json:"monologue_runs"`
}

// VisualAbstraction captures action density and visual writing load.
type VisualAbstraction struct {
	ActionLineCount      int     `json:"action_line_count"`
	ContinuousActionRuns int     `json:"continuous_action_runs"`
	VisualDensity        float64 `json:"visual_density"`
	VerticalWritingLoad  float64 `json:"vertical_writing_load"`
}

// ReferentialMemory captures how much character tracking a scene demands.
type ReferentialMemory struct {
	ActiveCharacterCount     int     `json:"active_character_count"`
	CharacterReintroductions int     `json:"character_reintroductions"`
	PronounDensity           float64 `json:"pronoun_density"`
}

// StructuralChange scores how strongly a scene breaks from its predecessor.
// EventBoundaryScore runs 0-100.
type StructuralChange struct {
	EventBoundaryScore float64 `json:"event_boundary_score"`
}

// #endregion groups

// #region micro

// LineTag classifies one line-level event inside a scene.
type LineTag string

const (
	TagHeading   LineTag = "S"
	TagAction    LineTag = "A"
	TagDialogue  LineTag = "D"
	TagCharacter LineTag = "C"
)

// MicroEvent is one tagged line-level event. Scenes without micro events
// leave the slice empty; the temporal core then treats the scene uniformly.
type MicroEvent struct {
	Tag       LineTag `json:"tag"`
	WordCount int     `json:"word_count"`
}

// #endregion micro

// SceneVector is the complete feature vector for one scene. SceneIndex is
// 1-based and sequences must be consecutive.
type SceneVector struct {
	SceneIndex  int               `json:"scene_index"`
	Linguistic  LinguisticLoad    `json:"linguistic_load"`
	Dialogue    DialogueDynamics  `json:"dialogue_dynamics"`
	Visual      VisualAbstraction `json:"visual_abstraction"`
	Referential ReferentialMemory `json:"referential_memory"`
	Structural  StructuralChange  `json:"structural_change"`
	Micro       []MicroEvent      `json:"micro_structure,omitempty"`
}
