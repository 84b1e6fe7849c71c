// Package config holds the pipeline configuration: provider endpoints and
// retry policy, fan-out bounds, cache location, matcher thresholds and the
// optional export targets.
package config

import "time"

// Config is the root configuration for a pipeline run.
type Config struct {
	Fantasy   ProviderConfig  `yaml:"fantasy"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Cache     CacheConfig     `yaml:"cache"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Database  DBConfig        `yaml:"database"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

// ProviderConfig holds one REST provider's transport settings.
type ProviderConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxRetries        int           `yaml:"max_retries"`         // re-issues after HTTP 429
	RetryBackoff      time.Duration `yaml:"retry_backoff"`       // floor for the first wait
	MaxBackoff        time.Duration `yaml:"max_backoff"`         // cap on any single wait
	DefaultRetryAfter time.Duration `yaml:"default_retry_after"` // used when Retry-After is absent
}

// AnalyticsConfig holds the analytics provider settings.
type AnalyticsConfig struct {
	ProviderConfig `yaml:",inline"`
	League         string `yaml:"league"`
}

// PipelineConfig holds fan-out and folding settings.
type PipelineConfig struct {
	Concurrency   int           `yaml:"concurrency"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"` // per entity, including 429 waits
	RunTimeout    time.Duration `yaml:"run_timeout"`   // whole run
	Windows       []int         `yaml:"windows"`
	TrackedFields []string      `yaml:"tracked_fields"`
	RollingFields []string      `yaml:"rolling_fields"`
	PointsField   string        `yaml:"points_field"`
	ForceRefresh  bool          `yaml:"force_refresh"`
}

// CacheConfig holds artifact locations.
type CacheConfig struct {
	Dir        string `yaml:"dir"`
	LedgerPath string `yaml:"ledger_path"` // sqlite ledger; empty disables
}

// MatcherConfig holds entity matching thresholds.
type MatcherConfig struct {
	Threshold     float64 `yaml:"threshold"`
	TeamThreshold float64 `yaml:"team_threshold"`
	Resolver      string  `yaml:"resolver"` // "reject" or "interactive"
}

// DBConfig holds the optional Postgres export target. An empty host disables export.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// Enabled reports whether a database target is configured.
func (db DBConfig) Enabled() bool { return db.Host != "" }

// MetricsConfig holds the Prometheus textfile target.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
