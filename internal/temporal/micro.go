package temporal

import (
	"math"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
)

// Instantaneous load per line tag. Action and dialogue loads grow with word
// count up to a fixed span; the mapping itself is structural, not tunable.
const (
	headingLoad   = 0.8
	actionBase    = 0.5
	actionSpan    = 0.5
	actionScale   = 20.0
	dialogueBase  = 0.3
	dialogueSpan  = 0.4
	dialogueScale = 15.0
	characterLoad = 0.1
	defaultLoad   = 0.2
)

// modifiers scale a scene's already-weighted effort and recovery.
type modifiers struct {
	effort   float64
	recovery float64
}

func neutralModifiers() modifiers {
	return modifiers{effort: 1, recovery: 1}
}

// microRefine derives effort and recovery modifiers from a scene's
// line-level events. Scenes without micro structure stay neutral.
func microRefine(micro []feature.MicroEvent, cfg config.MicroConfig) modifiers {
	if len(micro) == 0 {
		return neutralModifiers()
	}

	// 1. Carry-over accumulation: spiky load distributions concentrate
	// attention and raise effort up to the spike gain.
	sigma, peak, sum := 0.0, 0.0, 0.0
	for _, ev := range micro {
		sigma = eventLoad(ev) + cfg.Carryover*sigma
		if sigma > peak {
			peak = sigma
		}
		sum += sigma
	}
	uniformity := 1.0
	if peak > 0 {
		uniformity = sum / float64(len(micro)) / peak
	}
	effortMod := 1 + (1-uniformity)*cfg.SpikeGain

	// 2. Recovery texture: the longest contiguous low-load run decides how
	// much of the scene's recovery credit survives. Fragmented relief
	// barely counts.
	run, longest := 0, 0
	for _, ev := range micro {
		if eventLoad(ev) < cfg.LowLoadThreshold {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	recoveryMod := 1.0
	switch rel := float64(longest) / float64(len(micro)); {
	case rel < cfg.FragmentedFraction:
		recoveryMod = cfg.FragmentedModifier
	case rel < cfg.TightFraction:
		recoveryMod = cfg.TightModifier
	}

	return modifiers{effort: effortMod, recovery: recoveryMod}
}

func eventLoad(ev feature.MicroEvent) float64 {
	words := float64(ev.WordCount)
	switch ev.Tag {
	case feature.TagHeading:
		return headingLoad
	case feature.TagAction:
		return actionBase + math.Min(actionSpan, words/actionScale)
	case feature.TagDialogue:
		return dialogueBase + math.Min(dialogueSpan, words/dialogueScale)
	case feature.TagCharacter:
		return characterLoad
	default:
		return defaultLoad
	}
}
