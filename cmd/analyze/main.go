package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/archive"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/config"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/fixture"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/intent"
	"github.com/draftpulse/scene-dynamics/go-engine/internal/pipeline"
)

// #region main

func main() {
	featPath := flag.String("features", "", "path to scene features JSON")
	intentPath := flag.String("intents", "", "path to writer intent JSON (optional)")
	cfgPath := flag.String("config", "", "path to YAML config overrides (optional)")
	dbPath := flag.String("db", envOr("SCENEDYN_DB", ""), "archive the run to this SQLite database (optional)")
	jsonOut := flag.Bool("json", false, "output full analysis as JSON instead of the writer view")
	flag.Parse()

	if *featPath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze --features path/to/scenes.json [--intents path] [--config path] [--db path] [--json]")
		os.Exit(2)
	}

	if err := run(*featPath, *intentPath, *cfgPath, *dbPath, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(featPath, intentPath, cfgPath, dbPath string, jsonOut bool) error {
	script, err := fixture.Load(featPath)
	if err != nil {
		return err
	}
	features, err := script.ToFeatures()
	if err != nil {
		return err
	}

	var annotations []intent.Annotation
	if intentPath != "" {
		intents, err := fixture.LoadIntents(intentPath)
		if err != nil {
			return err
		}
		annotations = intents.ToAnnotations()
	}

	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
	}

	res, err := pipeline.Run(features, annotations, cfg)
	if err != nil {
		return err
	}

	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printWriterView(scriptTitle(script, featPath), res)
	}

	if dbPath != "" {
		store, err := archive.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.SaveRun(res)
		if err != nil {
			return err
		}
		fmt.Printf("\nArchived run %s\n", id)
	}
	return nil
}

func scriptTitle(script *fixture.Script, featPath string) string {
	if script.Title != "" {
		return script.Title
	}
	return filepath.Base(featPath)
}

// #endregion run

// #region writer-view

func printWriterView(title string, res pipeline.Result) {
	fmt.Printf("%s: %d scenes analyzed\n", title, res.SceneCount)

	for _, w := range res.Conflicts {
		fmt.Printf("\nWarning: %s\n", w.Message)
	}

	for _, r := range res.Mediated.Reflections {
		fmt.Printf("\nScenes %d-%d (%s confidence)\n", r.Range.Start, r.Range.End, r.Confidence)
		fmt.Printf("  %s\n", r.Question)
		fmt.Printf("  %s\n", r.Experience)
	}

	for _, a := range res.Mediated.Acknowledgments {
		fmt.Printf("\nScenes %d-%d\n", a.Range.Start, a.Range.End)
		fmt.Printf("  %s\n", a.Text)
	}

	if res.Mediated.SilenceExplanation != "" {
		fmt.Printf("\n%s\n", res.Mediated.SilenceExplanation)
	}

	if res.Mediated.AlertCapApplied {
		fmt.Printf("\nShowing the %d most confident reflections.\n", res.Mediated.TotalSurfaced)
	}
}

// #endregion writer-view

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// #endregion helpers
