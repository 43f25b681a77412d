package temporal

import (
	"testing"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
)

func microCfg() config.MicroConfig {
	return config.Default().Temporal.Micro
}

func events(tags ...feature.LineTag) []feature.MicroEvent {
	out := make([]feature.MicroEvent, len(tags))
	for i, tag := range tags {
		words := 0
		switch tag {
		case feature.TagAction:
			words = 40
		case feature.TagDialogue:
			words = 30
		}
		out[i] = feature.MicroEvent{Tag: tag, WordCount: words}
	}
	return out
}

func TestMicroRefineNeutralWithoutEvents(t *testing.T) {
	mods := microRefine(nil, microCfg())
	if mods.effort != 1 || mods.recovery != 1 {
		t.Fatalf("got modifiers %+v, want neutral", mods)
	}
}

func TestMicroRefineEffortBounded(t *testing.T) {
	cfg := microCfg()
	spiky := append(events(
		feature.TagCharacter, feature.TagCharacter, feature.TagCharacter,
		feature.TagCharacter, feature.TagCharacter, feature.TagCharacter,
	), feature.MicroEvent{Tag: feature.TagAction, WordCount: 200})
	mods := microRefine(spiky, cfg)
	if mods.effort <= 1 || mods.effort > 1+cfg.SpikeGain {
		t.Fatalf("spiky effort modifier %v outside (1, %v]", mods.effort, 1+cfg.SpikeGain)
	}
}

func TestMicroRefineSpikierScenesCostMore(t *testing.T) {
	cfg := microCfg()
	flat := microRefine(events(
		feature.TagDialogue, feature.TagDialogue, feature.TagDialogue,
		feature.TagDialogue, feature.TagDialogue, feature.TagDialogue,
	), cfg)
	spiky := microRefine(append(events(
		feature.TagCharacter, feature.TagCharacter, feature.TagCharacter,
		feature.TagCharacter, feature.TagCharacter, feature.TagCharacter,
	), feature.MicroEvent{Tag: feature.TagAction, WordCount: 200}), cfg)
	if spiky.effort <= flat.effort {
		t.Fatalf("spiky modifier %v not above flat %v", spiky.effort, flat.effort)
	}
}

func TestMicroRefineFragmentedRelief(t *testing.T) {
	// Single-event gaps in a dense scene: longest low-load run is 1 of 10.
	ev := events(
		feature.TagAction, feature.TagCharacter, feature.TagAction, feature.TagCharacter,
		feature.TagAction, feature.TagCharacter, feature.TagAction, feature.TagCharacter,
		feature.TagAction, feature.TagCharacter,
	)
	mods := microRefine(ev, microCfg())
	if mods.recovery != microCfg().FragmentedModifier {
		t.Fatalf("fragmented recovery modifier %v, want %v", mods.recovery, microCfg().FragmentedModifier)
	}
}

func TestMicroRefineTightRelief(t *testing.T) {
	// A two-event breather in ten events lands in the tight band.
	ev := events(
		feature.TagAction, feature.TagAction, feature.TagCharacter, feature.TagCharacter,
		feature.TagAction, feature.TagAction, feature.TagAction, feature.TagAction,
		feature.TagAction, feature.TagAction,
	)
	mods := microRefine(ev, microCfg())
	if mods.recovery != microCfg().TightModifier {
		t.Fatalf("tight recovery modifier %v, want %v", mods.recovery, microCfg().TightModifier)
	}
}

func TestMicroRefineSustainedReliefKeepsRecovery(t *testing.T) {
	ev := events(
		feature.TagCharacter, feature.TagCharacter, feature.TagCharacter, feature.TagCharacter,
		feature.TagAction, feature.TagAction, feature.TagAction, feature.TagAction,
		feature.TagAction, feature.TagAction,
	)
	mods := microRefine(ev, microCfg())
	if mods.recovery != 1 {
		t.Fatalf("sustained relief modifier %v, want 1", mods.recovery)
	}
}

func TestEventLoadSaturates(t *testing.T) {
	action := eventLoad(feature.MicroEvent{Tag: feature.TagAction, WordCount: 1000})
	if action != actionBase+actionSpan {
		t.Fatalf("long action load %v, want %v", action, actionBase+actionSpan)
	}
	dialogue := eventLoad(feature.MicroEvent{Tag: feature.TagDialogue, WordCount: 1000})
	if dialogue != dialogueBase+dialogueSpan {
		t.Fatalf("long dialogue load %v, want %v", dialogue, dialogueBase+dialogueSpan)
	}
	other := eventLoad(feature.MicroEvent{Tag: feature.LineTag("T"), WordCount: 50})
	if other != defaultLoad {
		t.Fatalf("unknown tag load %v, want %v", other, defaultLoad)
	}
}
