package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/fpl-data/internal/model"
)

// SummaryFetcher provides one entity's raw series.
type SummaryFetcher interface {
	EntitySeries(ctx context.Context, id int) (*model.EntitySeries, error)
}

// Observer receives exclusion events.
type Observer interface {
	ObserveExclusion(cause string)
}

// Config holds engine configuration.
type Config struct {
	Concurrency   int           // Max concurrent requests (default: 50)
	FetchTimeout  time.Duration // Per-entity timeout, including 429 waits (default: 5m)
	Windows       []int         // Trailing windows (default: 2, 3, 6)
	TrackedFields []string      // Per-period fields kept in full
	RollingFields []string      // Fields summarised over windows
	PointsField   string        // Field classified into returns (default: total_points)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency:   50,
		FetchTimeout:  5 * time.Minute,
		Windows:       []int{2, 3, 6},
		TrackedFields: []string{"total_points", "minutes"},
		RollingFields: []string{"total_points", "minutes"},
		PointsField:   "total_points",
	}
}

// Engine builds master, team and league datasets.
type Engine struct {
	cfg      Config
	fetcher  SummaryFetcher
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver reports exclusions to o.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// New creates a new Engine.
func New(cfg Config, fetcher SummaryFetcher, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.PointsField == "" {
		cfg.PointsField = "total_points"
	}
	e := &Engine{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// BuildMaster fetches every catalog entity's series and folds it into a
// master record. Per-entity failures are reported, not returned.
func (e *Engine) BuildMaster(ctx context.Context, catalog *model.Catalog, season string) (*model.MasterDataset, *Report, error) {
	start := e.now()
	ids := catalog.EntityIDs()
	report := &Report{Requested: len(ids)}

	results := FanOut(ctx, ids, e.cfg.Concurrency, e.cfg.FetchTimeout, e.fetcher.EntitySeries)
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("build master: %w", err)
	}

	ds := &model.MasterDataset{
		Season:  season,
		BuiltAt: start.UTC(),
		Records: make(map[int]model.MasterRecord, len(ids)),
	}

	for _, id := range ids {
		res := results[id]
		if res.Err != nil {
			e.exclude(report, id, CauseFetch, res.Err)
			continue
		}
		report.Fetched++

		entity, _ := catalog.EntityByID(id)
		rec, err := e.safeFold(entity, catalog, res.Value)
		if err != nil {
			e.exclude(report, id, CauseReduce, err)
			continue
		}
		ds.Records[id] = rec
		report.Built++
	}

	report.sortExclusions()
	ds.Excluded = report.ExcludedIDs()
	report.Duration = e.now().Sub(start)

	e.logger.Info("master build complete",
		"season", season,
		"requested", report.Requested,
		"fetched", report.Fetched,
		"built", report.Built,
		"excluded", len(report.Exclusions),
		"duration", report.Duration,
	)

	return ds, report, nil
}

// safeFold turns a panic inside Fold into a reduction failure for that entity.
func (e *Engine) safeFold(entity model.Entity, catalog *model.Catalog, series *model.EntitySeries) (rec model.MasterRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrReduction, r)
		}
	}()
	return Fold(entity, catalog, series, e.cfg)
}

func (e *Engine) exclude(report *Report, id int, cause Cause, err error) {
	report.Exclusions = append(report.Exclusions, Exclusion{EntityID: id, Cause: cause, Err: err})
	if e.observer != nil {
		e.observer.ObserveExclusion(string(cause))
	}
	e.logger.Warn("entity excluded",
		"entity_id", id,
		"cause", cause,
		"error", err,
	)
}
