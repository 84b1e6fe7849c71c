package pipeline

import (
	"context"
	"time"

	"github.com/rickgao/fpl-data/internal/cache"
	"github.com/rickgao/fpl-data/internal/engine"
	"github.com/rickgao/fpl-data/internal/model"
	"github.com/rickgao/fpl-data/internal/storage"
)

// Summary describes one completed run.
type Summary struct {
	RunID         string
	Season        string
	Built         int
	Excluded      int
	Unmatched     int
	Exclusions    []engine.Exclusion // empty when the master dataset was a cache hit
	CacheOutcomes map[string]cache.Outcome
	Duration      time.Duration

	Master  *model.MasterDataset
	Teams   *model.TeamDataset
	Matches *model.MatchTable
}

// Run executes catalog, master, teams and matches under the run deadline,
// records the run in the ledger and writes the metrics textfile.
func (rt *Runtime) Run(ctx context.Context) (*Summary, error) {
	if d := rt.Config.Pipeline.RunTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	start := time.Now()
	sum := &Summary{RunID: rt.ID.String()}
	rt.recordRun(ctx, sum, start, storage.StatusRunning, nil)
	rt.Logger.Info("run started", "force_refresh", rt.Config.Pipeline.ForceRefresh)

	err := rt.run(ctx, sum)
	sum.Duration = time.Since(start)
	sum.CacheOutcomes = rt.CacheOutcomes()

	status := storage.StatusSucceeded
	if err != nil {
		status = storage.StatusFailed
		rt.Logger.Error("run failed", "error", err, "duration", sum.Duration)
	} else {
		rt.Logger.Info("run complete",
			"season", sum.Season,
			"built", sum.Built,
			"excluded", sum.Excluded,
			"unmatched", sum.Unmatched,
			"duration", sum.Duration,
		)
	}
	// the run context may be spent; the ledger write must still land
	rt.recordRun(context.WithoutCancel(ctx), sum, start, status, err)
	rt.finishMetrics(sum.Duration)
	return sum, err
}

func (rt *Runtime) run(ctx context.Context, sum *Summary) error {
	catalog, span, err := rt.Catalog(ctx)
	if err != nil {
		return err
	}
	sum.Season = span

	master, report, _, err := rt.Master(ctx, catalog, span)
	if err != nil {
		return err
	}
	sum.Master = master
	sum.Built = len(master.Records)
	sum.Excluded = len(master.Excluded)
	if report != nil {
		sum.Exclusions = report.Exclusions
	}

	teams, _, err := rt.Teams(ctx, catalog, span)
	if err != nil {
		return err
	}
	sum.Teams = teams

	table, _, err := rt.Matches(ctx, catalog, span)
	if err != nil {
		return err
	}
	sum.Matches = table
	sum.Unmatched = len(table.Unmatched())
	return nil
}

func (rt *Runtime) recordRun(ctx context.Context, sum *Summary, start time.Time, status string, runErr error) {
	if rt.Ledger == nil {
		return
	}
	r := storage.Run{
		ID:        sum.RunID,
		Season:    sum.Season,
		StartedAt: start,
		Built:     sum.Built,
		Excluded:  sum.Excluded,
		Unmatched: sum.Unmatched,
		Status:    status,
	}
	if status != storage.StatusRunning {
		r.FinishedAt = start.Add(sum.Duration)
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	if err := rt.Ledger.RecordRun(ctx, r); err != nil {
		rt.Logger.Warn("failed to record run", "error", err)
	}
}

func (rt *Runtime) finishMetrics(d time.Duration) {
	rt.Metrics.RunCompleted(d, time.Now())
	path := rt.Config.Metrics.Textfile
	if path == "" {
		return
	}
	if err := rt.Metrics.WriteTextfile(path); err != nil {
		rt.Logger.Warn("failed to write metrics textfile", "path", path, "error", err)
	}
}
