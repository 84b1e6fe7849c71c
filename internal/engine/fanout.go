package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Result pairs one id with its fetch outcome.
type Result[T any] struct {
	Value T
	Err   error
}

// FanOut calls fetch once per id, at most concurrency at a time, each under
// its own timeout. It returns after every call has finished. Ids that never
// acquired a slot because ctx ended carry ctx's error.
func FanOut[T any](ctx context.Context, ids []int, concurrency int, timeout time.Duration, fetch func(context.Context, int) (T, error)) map[int]Result[T] {
	if concurrency < 1 {
		concurrency = 1
	}

	// Semaphore for bounded concurrency.
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make(map[int]Result[T], len(ids))

	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			var res Result[T]

			// Acquire semaphore slot.
			select {
			case sem <- struct{}{}:
				res = fetchOne(ctx, id, timeout, fetch)
				<-sem
			case <-ctx.Done():
				res.Err = ctx.Err()
			}

			mu.Lock()
			results[id] = res
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return results
}

func fetchOne[T any](ctx context.Context, id int, timeout time.Duration, fetch func(context.Context, int) (T, error)) Result[T] {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	v, err := fetch(ctx, id)
	return Result[T]{Value: v, Err: err}
}

// BuildDetail fetches one payload per id with the engine's concurrency and
// timeout. Failed ids are reported as fetch exclusions.
func BuildDetail[T any](ctx context.Context, e *Engine, ids []int, fetch func(context.Context, int) (T, error)) (map[int]T, *Report, error) {
	start := e.now()
	report := &Report{Requested: len(ids)}

	results := FanOut(ctx, ids, e.cfg.Concurrency, e.cfg.FetchTimeout, fetch)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	out := make(map[int]T, len(results))
	for _, id := range ids {
		res := results[id]
		if res.Err != nil {
			e.exclude(report, id, CauseFetch, res.Err)
			continue
		}
		out[id] = res.Value
		report.Fetched++
		report.Built++
	}

	report.sortExclusions()
	report.Duration = e.now().Sub(start)
	logDetail(e.logger, report)
	return out, report, nil
}

func logDetail(logger *slog.Logger, r *Report) {
	level := slog.LevelInfo
	if len(r.Exclusions) > 0 && r.Built == 0 {
		level = slog.LevelWarn
	}
	var timeouts int
	for _, ex := range r.Exclusions {
		if errors.Is(ex.Err, context.DeadlineExceeded) {
			timeouts++
		}
	}
	logger.Log(context.Background(), level, "detail build complete",
		"requested", r.Requested,
		"fetched", r.Fetched,
		"errors", len(r.Exclusions),
		"timeouts", timeouts,
		"duration", r.Duration,
	)
}
