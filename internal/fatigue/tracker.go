// Package fatigue implements the long-range fatigue reserve: a slow
// accumulator fed by sustained moderate effort, discharged into the signal
// at recovery moments or under crisis load, with a compounding penalty for
// long stretches without relief.
package fatigue

import (
	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

// Apply runs the fatigue pass over a computed signal sequence and returns a
// new slice. Strictly left to right; reordering scenes changes the result.
func Apply(signals []signal.Record, cfg config.FatigueConfig) []signal.Record {
	if len(signals) == 0 {
		return nil
	}
	out := make([]signal.Record, len(signals))
	reserve := 0.0
	consecutive := 0

	for i, rec := range signals {
		// 1. Sustained-effort counter: effortful scenes push it up, restful
		// scenes pull it down faster than it rose.
		if rec.Effort >= cfg.SustainedEffortThreshold {
			consecutive++
		} else {
			consecutive -= cfg.CoolDown
			if consecutive < 0 {
				consecutive = 0
			}
		}

		// 2. Accumulation: moderate effort without recovery banks fatigue;
		// high effort banks at half weight regardless of recovery.
		if rec.Effort > cfg.ModerateLow && rec.Effort < cfg.ModerateHigh && rec.Recovery < cfg.LowRecovery {
			reserve += (rec.Effort - cfg.ModerateLow) * cfg.AccumulationRate
		}
		if rec.Effort >= cfg.ModerateHigh {
			reserve += rec.Effort * cfg.AccumulationRate * cfg.HighEffortFactor
		}

		// 3. Discharge: recovery moments release banked fatigue into the
		// signal; failing that, crisis-level load forces a partial release.
		discharge := 0.0
		if rec.Recovery > cfg.DischargeRecovery {
			discharge = reserve * cfg.DischargeRate
		} else if rec.Signal > cfg.CrisisSignal {
			discharge = reserve * cfg.CrisisRate
		}
		s := rec.Signal + discharge
		reserve -= discharge

		// 4. Sustained penalty: past the onset, each further effortful
		// scene compounds, up to the cap.
		penalty := 0.0
		if consecutive > cfg.SustainedOnset {
			excess := float64(consecutive - cfg.SustainedOnset)
			penalty = cfg.PenaltyLinear*excess + cfg.PenaltyQuadratic*excess*excess
			if penalty > cfg.PenaltyCap {
				penalty = cfg.PenaltyCap
			}
		}
		s *= 1 - penalty
		if s < 0 {
			s = 0
		}

		// 5. Passive decay: the reserve leaks a little every scene.
		reserve *= 1 - cfg.DecayRate

		rec.Signal = s
		rec.FatigueReserve = reserve
		rec.SustainedPenalty = penalty
		out[i] = rec
	}
	return out
}
