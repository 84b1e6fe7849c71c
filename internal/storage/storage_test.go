package storage

import (
	"context"
	"testing"
	"time"

	"github.com/rickgao/fpl-data/internal/cache"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndListRuns(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)
	run := Run{ID: "run-1", StartedAt: start, Status: StatusRunning}
	if err := db.RecordRun(ctx, run); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	run.Season = "2023-2024"
	run.FinishedAt = start.Add(3 * time.Minute)
	run.Built, run.Excluded, run.Unmatched = 600, 4, 12
	run.Status = StatusSucceeded
	if err := db.RecordRun(ctx, run); err != nil {
		t.Fatalf("RecordRun (finish): %v", err)
	}
	if err := db.RecordRun(ctx, Run{ID: "run-2", StartedAt: start.Add(time.Hour), Status: StatusFailed, Error: "catalog: 503"}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := db.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].ID != "run-2" || runs[0].Error != "catalog: 503" {
		t.Errorf("runs[0] = %+v, want newest failed run first", runs[0])
	}
	got := runs[1]
	if got.Status != StatusSucceeded || got.Built != 600 || got.Season != "2023-2024" {
		t.Errorf("runs[1] = %+v", got)
	}
	if !got.FinishedAt.Equal(start.Add(3 * time.Minute)) {
		t.Errorf("FinishedAt = %v", got.FinishedAt)
	}

	limited, _ := db.ListRuns(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("ListRuns(1) returned %d rows", len(limited))
	}
}

func TestRecordArtifacts(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	key := cache.Key{Provider: "fpl", Season: "2023-2024", Category: "players", Name: "master"}

	rec := db.Recorder("run-1")
	if err := rec.RecordArtifact(ctx, key, "/tmp/master.json", cache.OutcomeBuilt); err != nil {
		t.Fatalf("RecordArtifact: %v", err)
	}
	if err := db.Recorder("run-2").RecordArtifact(ctx, key, "/tmp/master.json", cache.OutcomeHit); err != nil {
		t.Fatalf("RecordArtifact: %v", err)
	}
	other := cache.Key{Provider: "understat", Season: "2023-2024", Category: "players", Name: "matches"}
	if err := rec.RecordArtifact(ctx, other, "/tmp/matches.json", cache.OutcomeRefreshed); err != nil {
		t.Fatalf("RecordArtifact: %v", err)
	}

	arts, err := db.ListArtifacts(ctx)
	if err != nil {
		t.Fatalf("ListArtifacts: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(arts))
	}
	a := arts[0]
	if a.Key != key || a.Outcome != cache.OutcomeHit || a.RunID != "run-2" {
		t.Errorf("artifact = %+v", a)
	}
	if a.Builds != 1 || a.Hits != 1 {
		t.Errorf("builds/hits = %d/%d, want 1/1", a.Builds, a.Hits)
	}
}

func TestLedgerObservesStore(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	s := cache.New(t.TempDir(), cache.WithRecorder(db.Recorder("run-x")))
	key := cache.Key{Provider: "fpl", Season: "2023", Category: "teams", Name: "master"}

	build := func(context.Context) (map[string]int, error) { return map[string]int{"a": 1}, nil }
	if _, _, err := cache.GetOrBuild(ctx, s, key, build, false); err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}
	if _, _, err := cache.GetOrBuild(ctx, s, key, build, false); err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}

	arts, _ := db.ListArtifacts(ctx)
	if len(arts) != 1 || arts[0].Builds != 1 || arts[0].Hits != 1 {
		t.Errorf("artifacts = %+v", arts)
	}
}
