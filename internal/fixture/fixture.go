// Package fixture reads the JSON documents the CLIs consume: a features
// file describing one script and an optional intents file with writer
// annotations. Feature extraction itself happens upstream; these files
// arrive pre-extracted.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/intent"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/pattern"
)

// #region fixture-types

// Script is the top-level features document.
type Script struct {
	Title  string  `json:"title"`
	Scenes []Scene `json:"scenes"`
}

// Scene mirrors feature.SceneVector. The five groups are pointers so a
// document missing one fails ingestion naming the scene instead of
// silently reading zeros.
type Scene struct {
	SceneIndex  int                        `json:"scene_index"`
	Linguistic  *feature.LinguisticLoad    `json:"linguistic_load"`
	Dialogue    *feature.DialogueDynamics  `json:"dialogue_dynamics"`
	Visual      *feature.VisualAbstraction `json:"visual_abstraction"`
	Referential *feature.ReferentialMemory `json:"referential_memory"`
	Structural  *feature.StructuralChange  `json:"structural_change"`
	Micro       []feature.MicroEvent       `json:"micro_structure,omitempty"`
}

// Intents is the writer-annotations document. Ranges are [start, end]
// pairs of 1-based scene indices, inclusive.
type Intents struct {
	Annotations []Annotation `json:"annotations"`
}

// Annotation is one declared intent as written in the file. Labels are
// carried raw; the intent stage drops anything outside its vocabulary.
type Annotation struct {
	Range [2]int `json:"scene_range"`
	Label string `json:"intent_label"`
	Note  string `json:"writer_note,omitempty"`
}

// #endregion fixture-types

// #region loaders

// Load reads and parses a features document.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read features %s: %w", path, err)
	}
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse features %s: %w", path, err)
	}
	return &s, nil
}

// LoadIntents reads and parses an intents document.
func LoadIntents(path string) (*Intents, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intents %s: %w", path, err)
	}
	var d Intents
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse intents %s: %w", path, err)
	}
	return &d, nil
}

// #endregion loaders

// #region converters

// ToFeatures converts the document into validated scene vectors.
func (s *Script) ToFeatures() ([]feature.SceneVector, error) {
	features := make([]feature.SceneVector, 0, len(s.Scenes))
	for _, sc := range s.Scenes {
		if err := sc.checkGroups(); err != nil {
			return nil, err
		}
		features = append(features, feature.SceneVector{
			SceneIndex:  sc.SceneIndex,
			Linguistic:  *sc.Linguistic,
			Dialogue:    *sc.Dialogue,
			Visual:      *sc.Visual,
			Referential: *sc.Referential,
			Structural:  *sc.Structural,
			Micro:       sc.Micro,
		})
	}
	if err := feature.ValidateSequence(features); err != nil {
		return nil, err
	}
	return features, nil
}

func (sc Scene) checkGroups() error {
	missing := ""
	switch {
	case sc.Linguistic == nil:
		missing = "linguistic_load"
	case sc.Dialogue == nil:
		missing = "dialogue_dynamics"
	case sc.Visual == nil:
		missing = "visual_abstraction"
	case sc.Referential == nil:
		missing = "referential_memory"
	case sc.Structural == nil:
		missing = "structural_change"
	}
	if missing == "" {
		return nil
	}
	return &feature.ValidationError{
		SceneIndex: sc.SceneIndex,
		Reason:     fmt.Sprintf("missing feature group %s", missing),
	}
}

// ToAnnotations converts the document into domain annotations.
func (d *Intents) ToAnnotations() []intent.Annotation {
	annotations := make([]intent.Annotation, 0, len(d.Annotations))
	for _, a := range d.Annotations {
		annotations = append(annotations, intent.Annotation{
			Range: pattern.SceneRange{Start: a.Range[0], End: a.Range[1]},
			Label: intent.Label(a.Label),
			Note:  a.Note,
		})
	}
	return annotations
}

// #endregion converters
