package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/rickgao/fpl-data/internal/api"
	"github.com/rickgao/fpl-data/internal/cache"
	"github.com/rickgao/fpl-data/internal/config"
	"github.com/rickgao/fpl-data/internal/engine"
	"github.com/rickgao/fpl-data/internal/matcher"
	"github.com/rickgao/fpl-data/internal/metrics"
	"github.com/rickgao/fpl-data/internal/storage"
)

// Runtime holds everything one run needs. Nothing in it is global.
type Runtime struct {
	ID        uuid.UUID
	Config    *config.Config
	Logger    *slog.Logger
	Fantasy   *api.FantasyClient
	Analytics *api.AnalyticsClient
	Cache     *cache.Store
	Engine    *engine.Engine
	Matcher   *matcher.Matcher
	Metrics   *metrics.Manager
	Ledger    *storage.DB // nil when no ledger path is configured

	outcomes   *outcomeRecorder
	ownsLedger bool
}

type options struct {
	httpClient *http.Client
	resolver   matcher.Resolver
	metrics    *metrics.Manager
	ledger     *storage.DB
}

// Option configures New.
type Option func(*options)

// WithHTTPClient routes both providers through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithResolver overrides the resolver chosen by matcher.resolver.
func WithResolver(r matcher.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithMetrics supplies a metrics manager instead of a fresh one.
func WithMetrics(m *metrics.Manager) Option {
	return func(o *options) { o.metrics = m }
}

// WithLedger supplies an open ledger. The caller keeps ownership.
func WithLedger(db *storage.DB) Option {
	return func(o *options) { o.ledger = db }
}

// New builds a Runtime from validated configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.New()
	logger = logger.With("run_id", id.String())

	m := o.metrics
	if m == nil {
		m = metrics.NewManager()
	}

	rt := &Runtime{
		ID:      id,
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Ledger:  o.ledger,
	}

	if rt.Ledger == nil && cfg.Cache.LedgerPath != "" {
		db, err := storage.Open(cfg.Cache.LedgerPath)
		if err != nil {
			return nil, fmt.Errorf("open ledger: %w", err)
		}
		rt.Ledger = db
		rt.ownsLedger = true
	}

	rt.Fantasy = api.NewFantasyClient(cfg.Fantasy.BaseURL, clientOptions(cfg.Fantasy, o.httpClient, logger, m)...)
	rt.Analytics = api.NewAnalyticsClient(cfg.Analytics.BaseURL, cfg.Analytics.League,
		clientOptions(cfg.Analytics.ProviderConfig, o.httpClient, logger, m)...)

	rt.outcomes = &outcomeRecorder{metrics: m, seen: make(map[string]cache.Outcome)}
	if rt.Ledger != nil {
		rt.outcomes.ledger = rt.Ledger.Recorder(id.String())
	}
	rt.Cache = cache.New(cfg.Cache.Dir, cache.WithRecorder(rt.outcomes))

	rt.Engine = engine.New(engine.Config{
		Concurrency:   cfg.Pipeline.Concurrency,
		FetchTimeout:  cfg.Pipeline.FetchTimeout,
		Windows:       cfg.Pipeline.Windows,
		TrackedFields: cfg.Pipeline.TrackedFields,
		RollingFields: cfg.Pipeline.RollingFields,
		PointsField:   cfg.Pipeline.PointsField,
	}, rt.Fantasy, logger, engine.WithObserver(m))

	resolver := o.resolver
	if resolver == nil {
		resolver = newResolver(cfg.Matcher.Resolver)
	}
	rt.Matcher = matcher.New(matcher.Config{
		Threshold:     cfg.Matcher.Threshold,
		TeamThreshold: cfg.Matcher.TeamThreshold,
	}, resolver, logger)
	rt.Matcher.SetObserver(m)

	return rt, nil
}

func clientOptions(p config.ProviderConfig, hc *http.Client, logger *slog.Logger, m *metrics.Manager) []api.ClientOption {
	var opts []api.ClientOption
	if hc != nil {
		opts = append(opts, api.WithHTTPClient(hc))
	}
	opts = append(opts,
		api.WithRetries(p.MaxRetries, p.RetryBackoff),
		api.WithMaxBackoff(p.MaxBackoff),
		api.WithDefaultRetryAfter(p.DefaultRetryAfter),
		api.WithLogger(logger),
		api.WithObserver(m),
	)
	if p.Timeout > 0 {
		opts = append(opts, api.WithTimeout(p.Timeout))
	}
	return opts
}

func newResolver(name string) matcher.Resolver {
	if name == config.ResolverInteractive {
		return &matcher.PromptResolver{In: os.Stdin, Out: os.Stderr}
	}
	return matcher.RejectResolver{}
}

// Close releases the ledger if New opened it.
func (rt *Runtime) Close() error {
	if rt.ownsLedger && rt.Ledger != nil {
		return rt.Ledger.Close()
	}
	return nil
}

// CacheOutcomes returns the outcome of every artifact touched so far.
func (rt *Runtime) CacheOutcomes() map[string]cache.Outcome {
	return rt.outcomes.snapshot()
}

// outcomeRecorder fans cache events out to metrics, the ledger and the run summary.
type outcomeRecorder struct {
	metrics *metrics.Manager
	ledger  cache.Recorder

	mu   sync.Mutex
	seen map[string]cache.Outcome
}

func (r *outcomeRecorder) RecordArtifact(ctx context.Context, key cache.Key, path string, outcome cache.Outcome) error {
	r.metrics.ObserveCache(string(outcome))

	r.mu.Lock()
	r.seen[key.String()] = outcome
	r.mu.Unlock()

	if r.ledger != nil {
		return r.ledger.RecordArtifact(ctx, key, path, outcome)
	}
	return nil
}

func (r *outcomeRecorder) snapshot() map[string]cache.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]cache.Outcome, len(r.seen))
	for k, v := range r.seen {
		out[k] = v
	}
	return out
}
