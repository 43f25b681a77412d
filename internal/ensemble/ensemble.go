// Package ensemble estimates how sensitive a script's attentional signal
// is to the model constants. It re-runs the temporal and fatigue stages
// under randomly perturbed configs and reports per-scene uncertainty bands.
//
// A fixed seed makes the whole ensemble deterministic: every trial's rng
// is seeded up front from the root source, so scheduling order cannot
// change the result.
package ensemble

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/fatigue"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/feature"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/temporal"
)

// Band is the per-scene uncertainty summary across all trials. The 95%
// bounds are two standard deviations around the mean; the lower bound
// floors at zero because the signal cannot go negative.
type Band struct {
	SceneIndex int     `json:"scene_index"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Lower95    float64 `json:"lower_bound_95"`
	Upper95    float64 `json:"upper_bound_95"`
}

// Run executes cfg.Ensemble.Trials perturbed trials and aggregates them.
func Run(features []feature.SceneVector, cfg config.Config, seed int64) ([]Band, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if err := feature.ValidateSequence(features); err != nil {
		return nil, fmt.Errorf("validate features: %w", err)
	}

	// 1. Assign every trial its seed before anything runs concurrently.
	root := rand.New(rand.NewSource(seed))
	trialSeeds := make([]int64, cfg.Ensemble.Trials)
	for t := range trialSeeds {
		trialSeeds[t] = root.Int63()
	}

	// 2. Independent trials, one slot each.
	trials := make([][]float64, len(trialSeeds))
	var wg sync.WaitGroup
	wg.Add(len(trialSeeds))
	for t := range trialSeeds {
		go func(slot int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(trialSeeds[slot]))
			trialCfg := cfg.Perturbed(rng, cfg.Ensemble.Jitter)
			recs := temporal.Compute(features, trialCfg.Temporal)
			recs = fatigue.Apply(recs, trialCfg.Fatigue)
			vals := make([]float64, len(recs))
			for i, r := range recs {
				vals[i] = r.Signal
			}
			trials[slot] = vals
		}(t)
	}
	wg.Wait()

	// 3. Aggregate per scene.
	bands := make([]Band, len(features))
	for i, f := range features {
		mean := 0.0
		for _, trial := range trials {
			mean += trial[i]
		}
		mean /= float64(len(trials))

		std := 0.0
		if len(trials) > 1 {
			sumSq := 0.0
			for _, trial := range trials {
				d := trial[i] - mean
				sumSq += d * d
			}
			std = math.Sqrt(sumSq / float64(len(trials)-1))
		}

		lower := mean - 2*std
		if lower < 0 {
			lower = 0
		}
		bands[i] = Band{
			SceneIndex: f.SceneIndex,
			Mean:       mean,
			StdDev:     std,
			Lower95:    lower,
			Upper95:    mean + 2*std,
		}
	}

	log.Printf("[ENS] seed=%d trials=%d jitter=%.3f scenes=%d elapsed=%dms",
		seed, len(trialSeeds), cfg.Ensemble.Jitter, len(features), time.Since(start).Milliseconds())
	return bands, nil
}
