package mediation

import (
	"github.com/draftpulse/scene-dynamics/go-engine/internal/pattern"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/silence"
)

// #region templates

// experienceByType maps each pattern type to its experiential sentence.
// Every sentence describes what an audience may feel, never what the
// writer did wrong.
var experienceByType = map[pattern.Type]string{
	pattern.SustainedDemand:     "The audience may begin to feel mentally tired here.",
	pattern.LimitedRecovery:     "There's little chance to catch their breath.",
	pattern.SurpriseCluster:     "The shifts may feel sudden on first exposure.",
	pattern.SequenceRepetition:  "This stretch may feel similar to what came just before.",
	pattern.ConstructiveStrain:  "This section asks for sustained focus from the audience.",
	pattern.DegenerativeFatigue: "Attention may drift without recovery points.",
}

const defaultExperience = "The audience may experience elevated attention here."

// aspectByType feeds the question-first framing.
var aspectByType = map[pattern.Type]string{
	pattern.SustainedDemand:     "sustained attention",
	pattern.LimitedRecovery:     "intensity without breaks",
	pattern.SurpriseCluster:     "frequent shifts",
	pattern.SequenceRepetition:  "similarity to earlier sections",
	pattern.ConstructiveStrain:  "focused engagement",
	pattern.DegenerativeFatigue: "attention drift",
}

const defaultAspect = "experience"

// Failure-mode phrasings swap in when the classifier points clearly one way.
const (
	driftExperience    = "Attention may begin to wander here."
	collapseExperience = "This may feel mentally tiring."
)

// uncertaintyByBand picks the modal qualifier for a confidence band.
var uncertaintyByBand = map[pattern.Confidence]string{
	pattern.ConfidenceHigh:   "may",
	pattern.ConfidenceMedium: "might",
	pattern.ConfidenceLow:    "could",
}

// #endregion templates

// #region silence

var silenceByKey = map[silence.Key]string{
	silence.KeyStableContinuity: "Across this run, the audience experience remains relatively stable, " +
		"with natural effort and recovery balancing out. No moments stood out as likely to strain " +
		"first-pass attention.",
	silence.KeySelfCorrecting: "While individual moments may require focus, they tend to resolve " +
		"without accumulating fatigue. The attentional flow appears self-correcting.",
	silence.KeyStableButDrifting: "The experience is stable, though low-variance. Attention is not " +
		"strained, though it may not be heavily demanded.",
}

const intentAlignedExplanation = "No patterns are surfaced here because they align with your " +
	"declared intent. The signals observed are consistent with what you indicated."

const fallbackExplanation = "The attentional flow appears stable with regular recovery, or signals " +
	"are low confidence due to draft variability. This does not indicate quality; only that no " +
	"persistent patterns were detected."

// #endregion silence

// #region ban list

// forbiddenWords is the hard vocabulary ban. The serialized output is
// scanned for these as substrings after lowering; any hit fails the run.
var forbiddenWords = []string{
	"good",
	"bad",
	"improve",
	"fix",
	"optimize",
	"too long",
	"too short",
	"slow",
	"fast",
	"weak",
	"strong",
	"problem",
	"issue",
	"ideal",
	"optimal",
	"boring",
	"exciting",
	"confusing",
	"clear",
	"engaging",
	"dull",
	"effective",
	"ineffective",
	"should",
	"must",
	"need to",
	"recommend",
	"suggest",
	"tips",
	"suggestions",
	"advice",
}

// #endregion ban list
