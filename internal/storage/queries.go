package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rickgao/fpl-data/internal/cache"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one ledger row.
type Run struct {
	ID         string
	Season     string
	StartedAt  time.Time
	FinishedAt time.Time
	Built      int
	Excluded   int
	Unmatched  int
	Status     string
	Error      string
}

// Artifact is the latest ledger state of one cache artifact.
type Artifact struct {
	Key        cache.Key
	Path       string
	Outcome    cache.Outcome
	RunID      string
	RecordedAt time.Time
	Builds     int
	Hits       int
}

// RecordRun inserts or replaces a run row. Called at start and again at finish.
func (db *DB) RecordRun(ctx context.Context, r Run) error {
	var finished int64
	if !r.FinishedAt.IsZero() {
		finished = r.FinishedAt.Unix()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs(id, season, started_at, finished_at, built, excluded, unmatched, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Season, r.StartedAt.Unix(), finished,
		r.Built, r.Excluded, r.Unmatched, r.Status, r.Error,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, season, started_at, finished_at, built, excluded, unmatched, status, error
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		if err := rows.Scan(&r.ID, &r.Season, &started, &finished, &r.Built, &r.Excluded, &r.Unmatched, &r.Status, &r.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		if finished > 0 {
			r.FinishedAt = time.Unix(finished, 0).UTC()
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecordArtifact upserts the latest outcome for an artifact and bumps its
// build or hit counter.
func (db *DB) RecordArtifact(ctx context.Context, runID string, key cache.Key, path string, outcome cache.Outcome) error {
	build, hit := 1, 0
	if outcome == cache.OutcomeHit {
		build, hit = 0, 1
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO artifacts(provider, season, category, name, path, outcome, run_id, recorded_at, builds, hits)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider, season, category, name) DO UPDATE SET
			path = excluded.path,
			outcome = excluded.outcome,
			run_id = excluded.run_id,
			recorded_at = excluded.recorded_at,
			builds = builds + excluded.builds,
			hits = hits + excluded.hits`,
		key.Provider, key.Season, key.Category, key.Name, path, string(outcome), runID,
		time.Now().Unix(), build, hit,
	)
	if err != nil {
		return fmt.Errorf("record artifact %s: %w", key, err)
	}
	return nil
}

// ListArtifacts returns every recorded artifact ordered by key.
func (db *DB) ListArtifacts(ctx context.Context) ([]Artifact, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT provider, season, category, name, path, outcome, run_id, recorded_at, builds, hits
		FROM artifacts ORDER BY provider, season, category, name`)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		var outcome string
		var recorded int64
		if err := rows.Scan(&a.Key.Provider, &a.Key.Season, &a.Key.Category, &a.Key.Name,
			&a.Path, &outcome, &a.RunID, &recorded, &a.Builds, &a.Hits); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		a.Outcome = cache.Outcome(outcome)
		a.RecordedAt = time.Unix(recorded, 0).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

// Recorder binds the ledger to one run so it can observe a cache.Store.
func (db *DB) Recorder(runID string) cache.Recorder {
	return runRecorder{db: db, runID: runID}
}

type runRecorder struct {
	db    *DB
	runID string
}

func (r runRecorder) RecordArtifact(ctx context.Context, key cache.Key, path string, outcome cache.Outcome) error {
	return r.db.RecordArtifact(ctx, r.runID, key, path, outcome)
}
