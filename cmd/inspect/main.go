package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/archive"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", envOr("SCENEDYN_DB", ""), "path to analysis archive database")
	runID := flag.String("run", "", "show single run detail")
	last := flag.Int("last", 20, "show N most recent runs")
	suppressions := flag.Bool("suppressions", false, "with --run: show the suppression audit trail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/archive.db [--run id] [--suppressions] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := archive.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runErr error
	switch {
	case *runID != "" && *suppressions:
		runErr = runAuditMode(store, *runID, *jsonOut)
	case *runID != "":
		runErr = runDetailMode(store, *runID, *jsonOut)
	default:
		runErr = runListMode(store, *last, *jsonOut)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID      string `json:"run_id"`
	SceneCount int    `json:"scene_count"`
	Surfaced   int    `json:"surfaced"`
	Suppressed int    `json:"suppressed"`
	Silent     bool   `json:"silent"`
	CreatedAt  string `json:"created_at"`
}

func runListMode(store *archive.Store, last int, jsonOut bool) error {
	summaries, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	rows := make([]listRow, len(summaries))
	for i, s := range summaries {
		rows[i] = listRow{
			RunID:      s.RunID,
			SceneCount: s.SceneCount,
			Surfaced:   s.Surfaced,
			Suppressed: s.Suppressed,
			Silent:     s.Silent,
			CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %6s  %8s  %10s  %-6s  %s\n",
		"Run", "Scenes", "Surfaced", "Suppressed", "Silent", "Time")
	fmt.Printf("%-12s+-%6s+-%8s+-%10s+-%-6s+-%s\n",
		"------------", "------", "--------", "----------", "------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-12s  %6d  %8d  %10d  %-6v  %s\n",
			shortID(r.RunID), r.SceneCount, r.Surfaced, r.Suppressed, r.Silent, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(store *archive.Store, runID string, jsonOut bool) error {
	rec, err := store.GetRun(runID)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(rec.Result)
	}

	res := rec.Result
	fmt.Printf("Run:        %s\n", rec.RunID)
	fmt.Printf("Created:    %s\n", rec.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Printf("Scenes:     %d\n", res.SceneCount)
	fmt.Printf("Surfaced:   %d\n", len(res.Surfaced))
	fmt.Printf("Suppressed: %d\n", len(res.Suppressed))
	fmt.Printf("Silent:     %v\n", res.Silence.Silent)

	if len(res.Patterns) > 0 {
		fmt.Printf("\nDetected patterns:\n")
		for _, p := range res.Patterns {
			fmt.Printf("  %-24s  scenes %3d-%-3d  %s\n", p.Type, p.Range.Start, p.Range.End, p.Confidence)
		}
	}

	if len(res.Mediated.Reflections) > 0 {
		fmt.Printf("\nReflections:\n")
		for _, r := range res.Mediated.Reflections {
			fmt.Printf("  Scenes %d-%d (%s confidence)\n", r.Range.Start, r.Range.End, r.Confidence)
			fmt.Printf("    %s\n", r.Question)
			fmt.Printf("    %s\n", r.Experience)
		}
	}

	if res.Mediated.SilenceExplanation != "" {
		fmt.Printf("\n%s\n", res.Mediated.SilenceExplanation)
	}
	return nil
}

// #endregion detail-mode

// #region audit-mode

func runAuditMode(store *archive.Store, runID string, jsonOut bool) error {
	audit, err := store.Suppressions(runID)
	if err != nil {
		return err
	}
	if len(audit) == 0 {
		fmt.Fprintln(os.Stderr, "no suppressions recorded for this run")
		return nil
	}

	if jsonOut {
		return printJSON(audit)
	}

	fmt.Printf("%-24s  %-12s  %-28s  %-12s  %s\n",
		"Pattern", "Scenes", "Intent", "Declared", "Note")
	fmt.Printf("%-24s+-%-12s+-%-28s+-%-12s+-%s\n",
		"------------------------", "------------", "----------------------------", "------------", "--------------------")
	for _, row := range audit {
		fmt.Printf("%-24s  %4d-%-7d  %-28s  %4d-%-7d  %s\n",
			row.PatternType, row.StartScene, row.EndScene,
			row.IntentLabel, row.IntentStart, row.IntentEnd, row.AlignmentNote)
	}
	return nil
}

// #endregion audit-mode

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

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion helpers
