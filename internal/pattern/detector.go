package pattern

import (
	"fmt"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/signal"
)

// Detector scans a refined signal sequence for persistent patterns.
type Detector struct {
	signals  []signal.Record
	features []feature.SceneVector
	cfg      config.PatternConfig
}

// NewDetector builds a detector over the final signal sequence and the
// feature vectors it was computed from.
func NewDetector(signals []signal.Record, features []feature.SceneVector, cfg config.PatternConfig) *Detector {
	return &Detector{signals: signals, features: features, cfg: cfg}
}

// Detect runs every detector and scores each pattern's confidence from the
// evidence window behind it.
func (d *Detector) Detect() []Pattern {
	patterns := []Pattern{}
	patterns = append(patterns, d.sustainedDemand()...)
	patterns = append(patterns, d.limitedRecovery()...)
	patterns = append(patterns, d.surpriseClusters()...)
	patterns = append(patterns, d.sequenceRepetition()...)
	patterns = append(patterns, d.constructiveStrain()...)
	patterns = append(patterns, d.degenerativeFatigue()...)
	for i := range patterns {
		patterns[i].Confidence = d.confidence(patterns[i].Range)
	}
	return patterns
}

// #region run detectors

// sustainedDemand finds maximal contiguous runs of elevated signal.
func (d *Detector) sustainedDemand() []Pattern {
	var patterns []Pattern
	start := -1
	for i, sig := range d.signals {
		if sig.Signal > d.cfg.ElevatedSignal {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			patterns = append(patterns, d.demandRun(start, i-1)...)
			start = -1
		}
	}
	if start >= 0 {
		patterns = append(patterns, d.demandRun(start, len(d.signals)-1)...)
	}
	return patterns
}

func (d *Detector) demandRun(start, end int) []Pattern {
	count := end - start + 1
	if count < d.cfg.MinPersistence {
		return nil
	}
	window := d.signals[start : end+1]
	lo, hi, sum := window[0].Signal, window[0].Signal, 0.0
	for _, sig := range window {
		if sig.Signal < lo {
			lo = sig.Signal
		}
		if sig.Signal > hi {
			hi = sig.Signal
		}
		sum += sig.Signal
	}
	return []Pattern{{
		Type:  SustainedDemand,
		Range: SceneRange{Start: window[0].SceneIndex, End: window[count-1].SceneIndex},
		Description: fmt.Sprintf("Attentional signal elevated above %v across %d consecutive scenes",
			d.cfg.ElevatedSignal, count),
		Metrics: map[string]float64{
			"avg_signal":  sum / float64(count),
			"min_signal":  lo,
			"max_signal":  hi,
			"scene_count": float64(count),
		},
	}}
}

// limitedRecovery finds maximal contiguous runs of strained scenes that
// earn almost no recovery credit.
func (d *Detector) limitedRecovery() []Pattern {
	var patterns []Pattern
	start := -1
	for i, sig := range d.signals {
		if sig.Signal > d.cfg.LimitedSignal && sig.Recovery < d.cfg.LowRecovery {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			patterns = append(patterns, d.limitedRun(start, i-1)...)
			start = -1
		}
	}
	if start >= 0 {
		patterns = append(patterns, d.limitedRun(start, len(d.signals)-1)...)
	}
	return patterns
}

func (d *Detector) limitedRun(start, end int) []Pattern {
	count := end - start + 1
	if count < d.cfg.MinPersistence {
		return nil
	}
	window := d.signals[start : end+1]
	sum := 0.0
	for _, sig := range window {
		sum += sig.Recovery
	}
	return []Pattern{{
		Type:  LimitedRecovery,
		Range: SceneRange{Start: window[0].SceneIndex, End: window[count-1].SceneIndex},
		Description: fmt.Sprintf("Recovery credits below %v while signal > %v across %d scenes",
			d.cfg.LowRecovery, d.cfg.LimitedSignal, count),
		Metrics: map[string]float64{
			"avg_recovery": sum / float64(count),
			"scene_count":  float64(count),
		},
	}}
}

// #endregion run detectors

// #region window detectors

// surpriseClusters flags every window packing several hard structural
// breaks close together.
func (d *Detector) surpriseClusters() []Pattern {
	var patterns []Pattern
	w := d.cfg.ClusterWindow
	for i := 0; i+w <= len(d.features); i++ {
		high := 0
		for _, f := range d.features[i : i+w] {
			if f.Structural.EventBoundaryScore > d.cfg.HighBoundary {
				high++
			}
		}
		if high < d.cfg.ClusterCount {
			continue
		}
		patterns = append(patterns, Pattern{
			Type:  SurpriseCluster,
			Range: SceneRange{Start: d.features[i].SceneIndex, End: d.features[i+w-1].SceneIndex},
			Description: fmt.Sprintf("Event boundary scores > %v in %d of %d scenes",
				d.cfg.HighBoundary, high, w),
			Metrics: map[string]float64{
				"high_boundary_count": float64(high),
				"window_size":         float64(w),
			},
		})
	}
	return patterns
}

// sequenceRepetition needs a feature-similarity measure that is not
// defined yet; the type stays registered so downstream vocabularies cover
// it, and the detector reports nothing.
func (d *Detector) sequenceRepetition() []Pattern {
	return nil
}

// constructiveStrain flags windows where the signal runs elevated but
// steady recovery keeps pace: strain that resolves instead of compounding.
func (d *Detector) constructiveStrain() []Pattern {
	var patterns []Pattern
	w := d.cfg.StrainWindow
	for i := 0; i+w <= len(d.signals); i++ {
		window := d.signals[i : i+w]
		sumS, sumR := 0.0, 0.0
		for _, sig := range window {
			sumS += sig.Signal
			sumR += sig.Recovery
		}
		avgS, avgR := sumS/float64(w), sumR/float64(w)
		if avgS <= d.cfg.ElevatedSignal || avgR <= d.cfg.ConstructiveRecovery {
			continue
		}
		patterns = append(patterns, Pattern{
			Type:  ConstructiveStrain,
			Range: SceneRange{Start: window[0].SceneIndex, End: window[w-1].SceneIndex},
			Description: fmt.Sprintf("Signal elevated (avg %.2f) with recovery credits averaging %.2f per scene",
				avgS, avgR),
			Metrics: map[string]float64{
				"avg_signal":   avgS,
				"avg_recovery": avgR,
				"scene_count":  float64(w),
			},
		})
	}
	return patterns
}

// degenerativeFatigue flags windows where the signal is elevated, rising
// from the front half to the back half, and recovery has dried up.
func (d *Detector) degenerativeFatigue() []Pattern {
	var patterns []Pattern
	w := d.cfg.FatigueWindow
	for i := 0; i+w <= len(d.signals); i++ {
		window := d.signals[i : i+w]
		half := w / 2
		sumS, sumR, front, back := 0.0, 0.0, 0.0, 0.0
		for j, sig := range window {
			sumS += sig.Signal
			sumR += sig.Recovery
			if j < half {
				front += sig.Signal
			} else {
				back += sig.Signal
			}
		}
		avgS, avgR := sumS/float64(w), sumR/float64(w)
		frontAvg := front / float64(half)
		backAvg := back / float64(w-half)
		if avgS <= d.cfg.ElevatedSignal || avgR >= d.cfg.FatigueRecovery || backAvg <= frontAvg*d.cfg.RisingFactor {
			continue
		}
		patterns = append(patterns, Pattern{
			Type:  DegenerativeFatigue,
			Range: SceneRange{Start: window[0].SceneIndex, End: window[w-1].SceneIndex},
			Description: fmt.Sprintf("Signal rising from %.2f to %.2f with recovery credits < %v",
				window[0].Signal, window[w-1].Signal, d.cfg.FatigueRecovery),
			Metrics: map[string]float64{
				"start_signal": window[0].Signal,
				"end_signal":   window[w-1].Signal,
				"avg_recovery": avgR,
				"scene_count":  float64(w),
			},
		})
	}
	return patterns
}

// #endregion window detectors

// #region confidence

// confidence scores the evidence window behind a pattern: short windows
// cap the band, minimum-length windows floor it, and volatile evidence
// costs one level.
func (d *Detector) confidence(r SceneRange) Confidence {
	window := d.window(r)
	conf := ConfidenceHigh
	if len(window) < d.cfg.ShortWindow {
		conf = ConfidenceMedium
	}
	if len(window) == d.cfg.MinPersistence {
		conf = ConfidenceLow
	}
	if len(window) > 1 && variance(window) > d.cfg.VolatilityVariance {
		conf = conf.Downgrade()
	}
	return conf
}

// window returns the signal values covering r.
func (d *Detector) window(r SceneRange) []float64 {
	var out []float64
	for _, sig := range d.signals {
		if sig.SceneIndex >= r.Start && sig.SceneIndex <= r.End {
			out = append(out, sig.Signal)
		}
	}
	return out
}

func variance(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	sum := 0.0
	for _, v := range values {
		dev := v - mean
		sum += dev * dev
	}
	return sum / float64(len(values))
}

// #endregion confidence
