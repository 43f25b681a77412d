// Package silence justifies the absence of surfaced patterns. Silence is
// a first-class result: the analyzer grades how confidently the engine can
// call a quiet run genuinely stable rather than merely unmeasured.
package silence

import (
	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

// Key identifies why a run stayed silent.
type Key string

const (
	KeyNoData            Key = "no_data"
	KeyStableContinuity  Key = "stable_continuity"
	KeySelfCorrecting    Key = "self_correcting"
	KeyStableButDrifting Key = "stable_but_drifting"
	KeyMarginalStrain    Key = "marginal_strain"
)

// Band grades the engine's confidence in its own silence.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// Metrics are the stability aggregates an assessment rests on.
type Metrics struct {
	MaxSignal   float64 `json:"max_strain"`
	AvgSignal   float64 `json:"avg_strain"`
	AvgRecovery float64 `json:"avg_recovery"`
	MaxCollapse float64 `json:"max_collapse"`
	MaxDrift    float64 `json:"max_drift"`
}

// Assessment is the graded justification for a silent run.
type Assessment struct {
	Silent     bool    `json:"is_silent"`
	Confidence Band    `json:"silence_confidence,omitempty"`
	Metrics    Metrics `json:"stability_metrics"`
	Key        Key     `json:"explanation_key,omitempty"`
}

// Analyze grades silence for a run that surfaced no patterns. When patterns
// did surface, the run is simply not silent and nothing is graded.
func Analyze(signals []signal.Record, surfacedCount int, cfg config.SilenceConfig) Assessment {
	if surfacedCount > 0 {
		return Assessment{Silent: false}
	}
	if len(signals) == 0 {
		return Assessment{Silent: true, Confidence: BandLow, Key: KeyNoData}
	}

	m := stability(signals)
	band, key := BandLow, KeyMarginalStrain
	switch {
	case m.MaxSignal < cfg.HighMaxSignal && m.AvgRecovery > cfg.HighAvgRecovery && m.MaxCollapse < cfg.HighMaxCollapse:
		band, key = BandHigh, KeyStableContinuity
	case m.MaxSignal < cfg.MediumMaxSignal && (m.AvgRecovery > cfg.MediumAvgRecovery || m.AvgSignal < cfg.MediumAvgSignal):
		band, key = BandMedium, KeySelfCorrecting
	}
	// Heavy drift undercuts a confident "stable": the experience holds
	// together but attention wanders through it.
	if band == BandHigh && m.MaxDrift > cfg.DriftOverride {
		key = KeyStableButDrifting
	}
	return Assessment{Silent: true, Confidence: band, Metrics: m, Key: key}
}

func stability(signals []signal.Record) Metrics {
	var m Metrics
	sumS, sumR := 0.0, 0.0
	for _, sig := range signals {
		if sig.Signal > m.MaxSignal {
			m.MaxSignal = sig.Signal
		}
		if sig.Collapse > m.MaxCollapse {
			m.MaxCollapse = sig.Collapse
		}
		if sig.Drift > m.MaxDrift {
			m.MaxDrift = sig.Drift
		}
		sumS += sig.Signal
		sumR += sig.Recovery
	}
	m.AvgSignal = sumS / float64(len(signals))
	m.AvgRecovery = sumR / float64(len(signals))
	return m
}
