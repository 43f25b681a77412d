package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/ensemble"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/fixture"
)

// #region main

func main() {
	featPath := flag.String("features", "", "path to scene features JSON")
	cfgPath := flag.String("config", "", "path to YAML config overrides (optional)")
	trials := flag.Int("trials", 0, "override ensemble trial count (0 keeps config)")
	jitter := flag.Float64("jitter", -1, "override parameter jitter magnitude (negative keeps config)")
	seed := flag.Int64("seed", 1, "ensemble seed")
	jsonOut := flag.Bool("json", false, "output bands as JSON instead of table")
	flag.Parse()

	if *featPath == "" {
		fmt.Fprintln(os.Stderr, "usage: sensitivity --features path/to/scenes.json [--config path] [--trials N] [--jitter F] [--seed N] [--json]")
		os.Exit(2)
	}

	if err := run(*featPath, *cfgPath, *trials, *jitter, *seed, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(featPath, cfgPath string, trials int, jitter float64, seed int64, jsonOut bool) error {
	script, err := fixture.Load(featPath)
	if err != nil {
		return err
	}
	features, err := script.ToFeatures()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
	}
	if trials > 0 {
		cfg.Ensemble.Trials = trials
	}
	if jitter >= 0 {
		cfg.Ensemble.Jitter = jitter
	}

	bands, err := ensemble.Run(features, cfg, seed)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(bands)
	}

	fmt.Printf("%d scenes, %d trials, jitter %.3f, seed %d\n\n",
		len(bands), cfg.Ensemble.Trials, cfg.Ensemble.Jitter, seed)
	fmt.Printf("%5s  %8s  %8s  %8s  %8s\n", "Scene", "Mean", "StdDev", "Lower95", "Upper95")
	fmt.Printf("%5s+-%8s+-%8s+-%8s+-%8s\n", "-----", "--------", "--------", "--------", "--------")
	for _, b := range bands {
		fmt.Printf("%5d  %8.4f  %8.4f  %8.4f  %8.4f\n",
			b.SceneIndex, b.Mean, b.StdDev, b.Lower95, b.Upper95)
	}
	return nil
}

// #endregion run

// #region helpers

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// #endregion helpers
