package config

import (
	"fmt"
	"math"
)

// Validate rejects configurations that would break stage invariants.
func (c Config) Validate() error {
	t := c.Temporal
	if t.Lambda <= 0 || t.Lambda >= 1 {
		return fmt.Errorf("temporal: lambda %v outside (0, 1)", t.Lambda)
	}
	for name, v := range map[string]float64{
		"beta":       t.Beta,
		"gamma":      t.Gamma,
		"delta":      t.Delta,
		"wall_alpha": t.WallAlpha,
	} {
		if v < 0 {
			return fmt.Errorf("temporal: %s %v is negative", name, v)
		}
	}
	if t.SignalMax <= 0 {
		return fmt.Errorf("temporal: signal_max %v must be positive", t.SignalMax)
	}
	if t.RecoveryMax <= 0 {
		return fmt.Errorf("temporal: recovery_max %v must be positive", t.RecoveryMax)
	}
	if t.EffortThreshold <= 0 || t.EffortThreshold >= 1 {
		return fmt.Errorf("temporal: effort_threshold %v outside (0, 1)", t.EffortThreshold)
	}
	if t.OpeningScenes < 1 {
		return fmt.Errorf("temporal: opening_scenes %d must be at least 1", t.OpeningScenes)
	}
	if t.EndingFraction < 0 || t.EndingFraction > 1 {
		return fmt.Errorf("temporal: ending_fraction %v outside [0, 1]", t.EndingFraction)
	}
	if t.EndingRelease < 0 || t.EndingRelease > 1 {
		return fmt.Errorf("temporal: ending_release %v outside [0, 1]", t.EndingRelease)
	}
	if t.BoundaryScale <= 0 {
		return fmt.Errorf("temporal: boundary_scale %v must be positive", t.BoundaryScale)
	}
	if !(t.StateElevated < t.StateHigh && t.StateHigh < t.StateExtreme) {
		return fmt.Errorf("temporal: state breakpoints must be strictly increasing")
	}

	w := t.Weights
	sum := w.Linguistic + w.Dialogue + w.Visual + w.Referential + w.Structural
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("temporal: weights sum to %v, want 1", sum)
	}
	for name, v := range map[string]float64{
		"linguistic":  w.Linguistic,
		"dialogue":    w.Dialogue,
		"visual":      w.Visual,
		"referential": w.Referential,
		"structural":  w.Structural,
	} {
		if v < 0 {
			return fmt.Errorf("temporal: weight %s %v is negative", name, v)
		}
	}

	m := t.Micro
	if m.Carryover < 0 || m.Carryover >= 1 {
		return fmt.Errorf("micro: carryover %v outside [0, 1)", m.Carryover)
	}
	if m.SpikeGain < 0 {
		return fmt.Errorf("micro: spike_gain %v is negative", m.SpikeGain)
	}
	if m.FragmentedModifier <= 0 || m.TightModifier <= 0 {
		return fmt.Errorf("micro: recovery modifiers must be positive")
	}
	if m.FragmentedFraction < 0 || m.FragmentedFraction > m.TightFraction || m.TightFraction > 1 {
		return fmt.Errorf("micro: run fractions must satisfy 0 <= fragmented <= tight <= 1")
	}

	f := c.Fatigue
	if f.ModerateLow >= f.ModerateHigh {
		return fmt.Errorf("fatigue: moderate_low %v must be below moderate_high %v", f.ModerateLow, f.ModerateHigh)
	}
	if f.SustainedOnset < 0 || f.CoolDown < 0 {
		return fmt.Errorf("fatigue: sustained_onset and cool_down must be non-negative")
	}
	if f.PenaltyCap < 0 || f.PenaltyCap >= 1 {
		return fmt.Errorf("fatigue: penalty_cap %v outside [0, 1)", f.PenaltyCap)
	}
	for name, v := range map[string]float64{
		"accumulation_rate": f.AccumulationRate,
		"discharge_rate":    f.DischargeRate,
		"crisis_rate":       f.CrisisRate,
		"decay_rate":        f.DecayRate,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("fatigue: %s %v outside [0, 1]", name, v)
		}
	}

	fl := c.Failure
	if fl.CollapseDecay < 0 || fl.CollapseDecay >= 1 {
		return fmt.Errorf("failure: collapse_decay %v outside [0, 1)", fl.CollapseDecay)
	}
	if fl.DriftDecay < 0 || fl.DriftDecay >= 1 {
		return fmt.Errorf("failure: drift_decay %v outside [0, 1)", fl.DriftDecay)
	}
	if fl.PrimaryThreshold <= 0 || fl.PrimaryThreshold >= 1 {
		return fmt.Errorf("failure: primary_threshold %v outside (0, 1)", fl.PrimaryThreshold)
	}

	p := c.Pattern
	if p.MinPersistence < 1 {
		return fmt.Errorf("pattern: min_persistence %d must be at least 1", p.MinPersistence)
	}
	if p.ClusterWindow < 1 || p.ClusterCount < 1 || p.ClusterCount > p.ClusterWindow {
		return fmt.Errorf("pattern: cluster_count must be within 1..cluster_window")
	}
	if p.StrainWindow < 1 || p.FatigueWindow < 2 {
		return fmt.Errorf("pattern: strain_window and fatigue_window too small")
	}
	if p.RisingFactor <= 0 {
		return fmt.Errorf("pattern: rising_factor %v must be positive", p.RisingFactor)
	}

	md := c.Mediation
	if md.AlertFloor < 1 || md.AlertPerScenes < 1 {
		return fmt.Errorf("mediation: alert_floor and alert_per_scenes must be at least 1")
	}

	e := c.Ensemble
	if e.Trials < 1 {
		return fmt.Errorf("ensemble: trials %d must be at least 1", e.Trials)
	}
	if e.Jitter < 0 {
		return fmt.Errorf("ensemble: jitter %v is negative", e.Jitter)
	}
	return nil
}
