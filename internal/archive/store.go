// Package archive persists analysis runs to SQLite. The full result is
// kept as JSON for replay; patterns, reflections, and every suppression
// decision are also broken out into rows so runs can be audited without
// deserializing anything.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/draftpulse/scene-dynamics/go-engine/internal/pipeline"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id       TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	scene_count  INTEGER NOT NULL,
	surfaced     INTEGER NOT NULL,
	suppressed   INTEGER NOT NULL,
	silent       INTEGER NOT NULL,
	result_json  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_patterns (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	pattern_type TEXT NOT NULL,
	start_scene  INTEGER NOT NULL,
	end_scene    INTEGER NOT NULL,
	confidence   TEXT NOT NULL,
	description  TEXT,
	FOREIGN KEY (run_id) REFERENCES analysis_runs(run_id)
);

CREATE TABLE IF NOT EXISTS suppression_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT NOT NULL,
	pattern_type   TEXT NOT NULL,
	start_scene    INTEGER NOT NULL,
	end_scene      INTEGER NOT NULL,
	intent_label   TEXT NOT NULL,
	intent_start   INTEGER NOT NULL,
	intent_end     INTEGER NOT NULL,
	alignment_note TEXT,
	created_at     TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES analysis_runs(run_id)
);

CREATE TABLE IF NOT EXISTS run_reflections (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	start_scene INTEGER NOT NULL,
	end_scene   INTEGER NOT NULL,
	question    TEXT NOT NULL,
	experience  TEXT NOT NULL,
	uncertainty TEXT NOT NULL,
	confidence  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES analysis_runs(run_id)
);
`

// #endregion schema

// #region store-struct

// Store manages archived analysis runs in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region records

// RunRecord is one archived run with its identity restored.
type RunRecord struct {
	RunID     string
	CreatedAt time.Time
	Result    pipeline.Result
}

// RunSummary is the listing row for one archived run.
type RunSummary struct {
	RunID      string
	CreatedAt  time.Time
	SceneCount int
	Surfaced   int
	Suppressed int
	Silent     bool
}

// SuppressionRow is one audited suppression decision.
type SuppressionRow struct {
	PatternType   string
	StartScene    int
	EndScene      int
	IntentLabel   string
	IntentStart   int
	IntentEnd     int
	AlignmentNote string
}

// #endregion records

// #region save-run

// SaveRun archives a completed result and returns the assigned run id.
// Identity is minted here; the result itself stays free of it.
func (s *Store) SaveRun(res pipeline.Result) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	resultJSON, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO analysis_runs (run_id, created_at, scene_count, surfaced, suppressed, silent, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, now.Format(time.RFC3339Nano), res.SceneCount,
		len(res.Surfaced), len(res.Suppressed), res.Silence.Silent, string(resultJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, p := range res.Patterns {
		_, err = tx.Exec(
			`INSERT INTO run_patterns (run_id, pattern_type, start_scene, end_scene, confidence, description)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, string(p.Type), p.Range.Start, p.Range.End, string(p.Confidence), p.Description,
		)
		if err != nil {
			return "", fmt.Errorf("insert pattern: %w", err)
		}
	}

	for _, sup := range res.Suppressed {
		_, err = tx.Exec(
			`INSERT INTO suppression_log (run_id, pattern_type, start_scene, end_scene, intent_label, intent_start, intent_end, alignment_note, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, string(sup.Type), sup.Range.Start, sup.Range.End,
			string(sup.Intent.Label), sup.Intent.Range.Start, sup.Intent.Range.End,
			sup.AlignmentNote, now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return "", fmt.Errorf("insert suppression: %w", err)
		}
	}

	for _, r := range res.Mediated.Reflections {
		_, err = tx.Exec(
			`INSERT INTO run_reflections (run_id, start_scene, end_scene, question, experience, uncertainty, confidence)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, r.Range.Start, r.Range.End, r.Question, r.Experience, r.Uncertainty, string(r.Confidence),
		)
		if err != nil {
			return "", fmt.Errorf("insert reflection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// #endregion save-run

// #region get-run

// GetRun retrieves one archived run. A missing id surfaces as a wrapped
// sql.ErrNoRows.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var createdStr string
	var resultJSON string

	err := s.db.QueryRow(
		`SELECT run_id, created_at, result_json FROM analysis_runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &createdStr, &resultJSON)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return rec, nil
}

// #endregion get-run

// #region list-runs

// ListRuns returns the most recent archived runs.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT run_id, created_at, scene_count, surfaced, suppressed, silent
		 FROM analysis_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var sum RunSummary
		var createdStr string
		if err := rows.Scan(&sum.RunID, &createdStr, &sum.SceneCount, &sum.Surfaced, &sum.Suppressed, &sum.Silent); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// #endregion list-runs

// #region suppressions

// Suppressions returns the audit trail of suppression decisions for a run.
func (s *Store) Suppressions(runID string) ([]SuppressionRow, error) {
	rows, err := s.db.Query(
		`SELECT pattern_type, start_scene, end_scene, intent_label, intent_start, intent_end, alignment_note
		 FROM suppression_log WHERE run_id = ? ORDER BY id ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query suppressions: %w", err)
	}
	defer rows.Close()

	var audit []SuppressionRow
	for rows.Next() {
		var row SuppressionRow
		var note sql.NullString
		if err := rows.Scan(&row.PatternType, &row.StartScene, &row.EndScene,
			&row.IntentLabel, &row.IntentStart, &row.IntentEnd, &note); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if note.Valid {
			row.AlignmentNote = note.String
		}
		audit = append(audit, row)
	}
	return audit, rows.Err()
}

// #endregion suppressions
