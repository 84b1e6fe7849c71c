package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// BatchSender is the subset of *pgxpool.Pool the writers need.
type BatchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Config controls batching.
type Config struct {
	BatchSize int
}

// DefaultConfig returns the default writer configuration.
func DefaultConfig() Config {
	return Config{BatchSize: 500}
}

// Stats tracks writer activity.
type Stats struct {
	Upserts int64
	Batches int64
	Errors  int64
}

// Writer upserts datasets in fixed-size batches.
type Writer struct {
	cfg    Config
	db     BatchSender
	logger *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// New creates a Writer.
func New(cfg Config, db BatchSender, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	return &Writer{cfg: cfg, db: db, logger: logger}
}

// Stats returns current counters.
func (w *Writer) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// send queues each statement into batches of cfg.BatchSize and executes them.
// Returns the number of rows affected.
func (w *Writer) send(ctx context.Context, table string, stmts []queued) (int, error) {
	total := 0
	for start := 0; start < len(stmts); start += w.cfg.BatchSize {
		end := min(start+w.cfg.BatchSize, len(stmts))
		chunk := stmts[start:end]

		began := time.Now()
		n, err := w.exec(ctx, chunk)
		if err != nil {
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.logger.Error("batch upsert failed", "table", table, "error", err, "count", len(chunk))
			return total, err
		}
		total += n

		w.mu.Lock()
		w.stats.Upserts += int64(n)
		w.stats.Batches++
		w.mu.Unlock()

		w.logger.Debug("flushed batch",
			"table", table,
			"count", len(chunk),
			"duration", time.Since(began),
		)
	}
	return total, nil
}

type queued struct {
	sql  string
	args []any
}

func (w *Writer) exec(ctx context.Context, stmts []queued) (int, error) {
	batch := &pgx.Batch{}
	for _, q := range stmts {
		batch.Queue(q.sql, q.args...)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	affected := 0
	for range stmts {
		ct, err := results.Exec()
		if err != nil {
			return affected, err
		}
		affected += int(ct.RowsAffected())
	}
	return affected, nil
}
