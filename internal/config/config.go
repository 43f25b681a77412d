// Package config holds every tunable constant of the analysis pipeline in
// one immutable value. A Config is constructed once per run, from Default
// or Load, and passed by value into each stage.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region sections

// WeightConfig blends the five normalized feature groups into effort.
// The five weights must sum to 1.
type WeightConfig struct {
	Linguistic  float64 `yaml:"linguistic"`
	Dialogue    float64 `yaml:"dialogue"`
	Visual      float64 `yaml:"visual"`
	Referential float64 `yaml:"referential"`
	Structural  float64 `yaml:"structural"`
}

// MicroConfig tunes the intra-scene refinement of effort and recovery.
type MicroConfig struct {
	Carryover          float64 `yaml:"carryover"`
	SpikeGain          float64 `yaml:"spike_gain"`
	LowLoadThreshold   float64 `yaml:"low_load_threshold"`
	FragmentedFraction float64 `yaml:"fragmented_fraction"`
	FragmentedModifier float64 `yaml:"fragmented_modifier"`
	TightFraction      float64 `yaml:"tight_fraction"`
	TightModifier      float64 `yaml:"tight_modifier"`
}

// TemporalConfig tunes the accumulation and recovery dynamics.
type TemporalConfig struct {
	Lambda          float64 `yaml:"lambda"`
	Beta            float64 `yaml:"beta"`
	Gamma           float64 `yaml:"gamma"`
	Delta           float64 `yaml:"delta"`
	WallAlpha       float64 `yaml:"wall_alpha"`
	EffortThreshold float64 `yaml:"effort_threshold"`
	SignalMax       float64 `yaml:"signal_max"`
	RecoveryMax     float64 `yaml:"recovery_max"`

	// Attention budget boundaries. The opening ramp scales lambda up over
	// the first OpeningScenes scenes; the ending release scales it down
	// over the final EndingFraction of the script.
	OpeningScenes  int     `yaml:"opening_scenes"`
	EndingFraction float64 `yaml:"ending_fraction"`
	EndingRelease  float64 `yaml:"ending_release"`

	BoundaryThreshold float64 `yaml:"boundary_threshold"`
	BoundaryScale     float64 `yaml:"boundary_scale"`
	DensityThreshold  float64 `yaml:"density_threshold"`

	// Fatigue state breakpoints over the accumulated signal.
	StateElevated float64 `yaml:"state_elevated"`
	StateHigh     float64 `yaml:"state_high"`
	StateExtreme  float64 `yaml:"state_extreme"`

	Weights WeightConfig `yaml:"weights"`
	Micro   MicroConfig  `yaml:"micro"`
}

// FatigueConfig tunes the long-range fatigue reserve.
type FatigueConfig struct {
	AccumulationRate         float64 `yaml:"accumulation_rate"`
	HighEffortFactor         float64 `yaml:"high_effort_factor"`
	DischargeRate            float64 `yaml:"discharge_rate"`
	CrisisRate               float64 `yaml:"crisis_rate"`
	DecayRate                float64 `yaml:"decay_rate"`
	ModerateLow              float64 `yaml:"moderate_low"`
	ModerateHigh             float64 `yaml:"moderate_high"`
	LowRecovery              float64 `yaml:"low_recovery"`
	DischargeRecovery        float64 `yaml:"discharge_recovery"`
	CrisisSignal             float64 `yaml:"crisis_signal"`
	SustainedEffortThreshold float64 `yaml:"sustained_effort_threshold"`
	SustainedOnset           int     `yaml:"sustained_onset"`
	CoolDown                 int     `yaml:"cool_down"`
	PenaltyLinear            float64 `yaml:"penalty_linear"`
	PenaltyQuadratic         float64 `yaml:"penalty_quadratic"`
	PenaltyCap               float64 `yaml:"penalty_cap"`
}

// FailureConfig tunes the collapse and drift classifiers.
type FailureConfig struct {
	CollapseDecay       float64 `yaml:"collapse_decay"`
	DriftDecay          float64 `yaml:"drift_decay"`
	EffortHigh          float64 `yaml:"effort_high"`
	EffortGain          float64 `yaml:"effort_gain"`
	LowRecovery         float64 `yaml:"low_recovery"`
	LowRecoveryPressure float64 `yaml:"low_recovery_pressure"`
	ChaosBoundary       float64 `yaml:"chaos_boundary"`
	ChaosGain           float64 `yaml:"chaos_gain"`
	FlatDelta           float64 `yaml:"flat_delta"`
	ModerateEffort      float64 `yaml:"moderate_effort"`
	StagnationPressure  float64 `yaml:"stagnation_pressure"`
	LowNoveltyBoundary  float64 `yaml:"low_novelty_boundary"`
	LowNoveltyPressure  float64 `yaml:"low_novelty_pressure"`
	NoveltyBoundary     float64 `yaml:"novelty_boundary"`
	NoveltyDelta        float64 `yaml:"novelty_delta"`
	NoveltyReset        float64 `yaml:"novelty_reset"`
	PrimaryThreshold    float64 `yaml:"primary_threshold"`
}

// PatternConfig tunes the persistent pattern detectors.
type PatternConfig struct {
	ElevatedSignal       float64 `yaml:"elevated_signal"`
	LimitedSignal        float64 `yaml:"limited_signal"`
	LowRecovery          float64 `yaml:"low_recovery"`
	ConstructiveRecovery float64 `yaml:"constructive_recovery"`
	HighBoundary         float64 `yaml:"high_boundary"`
	MinPersistence       int     `yaml:"min_persistence"`
	ClusterWindow        int     `yaml:"cluster_window"`
	ClusterCount         int     `yaml:"cluster_count"`
	StrainWindow         int     `yaml:"strain_window"`
	FatigueWindow        int     `yaml:"fatigue_window"`
	FatigueRecovery      float64 `yaml:"fatigue_recovery"`
	RisingFactor         float64 `yaml:"rising_factor"`
	ShortWindow          int     `yaml:"short_window"`
	VolatilityVariance   float64 `yaml:"volatility_variance"`
}

// SilenceConfig tunes the stability thresholds behind silence confidence.
type SilenceConfig struct {
	HighMaxSignal     float64 `yaml:"high_max_signal"`
	HighAvgRecovery   float64 `yaml:"high_avg_recovery"`
	HighMaxCollapse   float64 `yaml:"high_max_collapse"`
	MediumMaxSignal   float64 `yaml:"medium_max_signal"`
	MediumAvgRecovery float64 `yaml:"medium_avg_recovery"`
	MediumAvgSignal   float64 `yaml:"medium_avg_signal"`
	DriftOverride     float64 `yaml:"drift_override"`
}

// MediationConfig tunes the writer-facing surface.
type MediationConfig struct {
	AlertFloor     int     `yaml:"alert_floor"`
	AlertPerScenes int     `yaml:"alert_per_scenes"`
	BiasThreshold  float64 `yaml:"bias_threshold"`
}

// EnsembleConfig tunes the perturbed uncertainty ensemble.
type EnsembleConfig struct {
	Trials int     `yaml:"trials"`
	Jitter float64 `yaml:"jitter"`
}

// #endregion sections

// Config is the complete pipeline configuration.
type Config struct {
	Temporal  TemporalConfig  `yaml:"temporal"`
	Fatigue   FatigueConfig   `yaml:"fatigue"`
	Failure   FailureConfig   `yaml:"failure"`
	Pattern   PatternConfig   `yaml:"pattern"`
	Silence   SilenceConfig   `yaml:"silence"`
	Mediation MediationConfig `yaml:"mediation"`
	Ensemble  EnsembleConfig  `yaml:"ensemble"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Temporal: TemporalConfig{
			Lambda:          0.85,
			Beta:            0.3,
			Gamma:           0.2,
			Delta:           0.1,
			WallAlpha:       0.05,
			EffortThreshold: 0.4,
			SignalMax:       2.0,
			RecoveryMax:     0.5,

			OpeningScenes:  10,
			EndingFraction: 0.05,
			EndingRelease:  0.5,

			BoundaryThreshold: 0.5,
			BoundaryScale:     50,
			DensityThreshold:  0.3,

			StateElevated: 1.5,
			StateHigh:     2.0,
			StateExtreme:  3.0,

			Weights: WeightConfig{
				Linguistic:  0.25,
				Dialogue:    0.20,
				Visual:      0.30,
				Referential: 0.15,
				Structural:  0.10,
			},
			Micro: MicroConfig{
				Carryover:          0.9,
				SpikeGain:          0.2,
				LowLoadThreshold:   0.35,
				FragmentedFraction: 0.15,
				FragmentedModifier: 0.5,
				TightFraction:      0.30,
				TightModifier:      0.8,
			},
		},
		Fatigue: FatigueConfig{
			AccumulationRate:         0.15,
			HighEffortFactor:         0.5,
			DischargeRate:            0.4,
			CrisisRate:               0.2,
			DecayRate:                0.05,
			ModerateLow:              0.3,
			ModerateHigh:             0.6,
			LowRecovery:              0.2,
			DischargeRecovery:        0.3,
			CrisisSignal:             0.7,
			SustainedEffortThreshold: 0.4,
			SustainedOnset:           3,
			CoolDown:                 2,
			PenaltyLinear:            0.025,
			PenaltyQuadratic:         0.008,
			PenaltyCap:               0.4,
		},
		Failure: FailureConfig{
			CollapseDecay:       0.85,
			DriftDecay:          0.6,
			EffortHigh:          0.6,
			EffortGain:          2.0,
			LowRecovery:         0.1,
			LowRecoveryPressure: 0.2,
			ChaosBoundary:       70,
			ChaosGain:           1.2,
			FlatDelta:           0.1,
			ModerateEffort:      0.5,
			StagnationPressure:  0.15,
			LowNoveltyBoundary:  20,
			LowNoveltyPressure:  0.15,
			NoveltyBoundary:     60,
			NoveltyDelta:        0.3,
			NoveltyReset:        0.2,
			PrimaryThreshold:    0.6,
		},
		Pattern: PatternConfig{
			ElevatedSignal:       1.5,
			LimitedSignal:        1.0,
			LowRecovery:          0.2,
			ConstructiveRecovery: 0.2,
			HighBoundary:         25,
			MinPersistence:       3,
			ClusterWindow:        5,
			ClusterCount:         3,
			StrainWindow:         5,
			FatigueWindow:        7,
			FatigueRecovery:      0.1,
			RisingFactor:         1.2,
			ShortWindow:          5,
			VolatilityVariance:   0.5,
		},
		Silence: SilenceConfig{
			HighMaxSignal:     0.6,
			HighAvgRecovery:   0.15,
			HighMaxCollapse:   0.5,
			MediumMaxSignal:   0.8,
			MediumAvgRecovery: 0.1,
			MediumAvgSignal:   0.3,
			DriftOverride:     0.7,
		},
		Mediation: MediationConfig{
			AlertFloor:     3,
			AlertPerScenes: 12,
			BiasThreshold:  0.6,
		},
		Ensemble: EnsembleConfig{
			Trials: 20,
			Jitter: 0.07,
		},
	}
}

// Load reads a YAML overlay on top of Default and validates the result.
// Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
