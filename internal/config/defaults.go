package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultFantasyURL      = "https://fantasy.premierleague.com/api"
	DefaultAnalyticsURL    = "https://understat.com/api"
	DefaultAnalyticsLeague = "EPL"
	DefaultAPITimeout      = 30 * time.Second
	DefaultMaxRetries      = 8
	DefaultRetryBackoff    = time.Second
	DefaultMaxBackoff      = 2 * time.Minute
	DefaultRetryAfter      = 5 * time.Second
	DefaultConcurrency     = 50
	DefaultFetchTimeout    = 5 * time.Minute
	DefaultRunTimeout      = 45 * time.Minute
	DefaultPointsField     = "total_points"
	DefaultCacheDir        = "cached_data"
	DefaultMatchThreshold  = 0.40
	DefaultTeamThreshold   = 0.75
	DefaultResolver        = ResolverReject
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	ResolverReject         = "reject"
	ResolverInteractive    = "interactive"
)

// DefaultWindows are the trailing windows summarised for every rolling field.
var DefaultWindows = []int{2, 3, 6}

// DefaultTrackedFields are the per-period fields kept in full in each master record.
var DefaultTrackedFields = []string{
	"total_points", "minutes", "goals_scored", "assists", "clean_sheets",
	"goals_conceded", "saves", "bonus", "bps", "influence", "creativity",
	"threat", "ict_index", "expected_goals", "expected_assists",
	"expected_goal_involvements", "value", "selected", "was_home", "opponent_team",
}

// DefaultRollingFields are the fields summarised over trailing windows.
var DefaultRollingFields = []string{
	"total_points", "minutes", "bps", "ict_index", "expected_goal_involvements",
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	applyProviderDefaults(&c.Fantasy, DefaultFantasyURL)
	applyProviderDefaults(&c.Analytics.ProviderConfig, DefaultAnalyticsURL)
	if c.Analytics.League == "" {
		c.Analytics.League = DefaultAnalyticsLeague
	}

	// Pipeline defaults
	if c.Pipeline.Concurrency == 0 {
		c.Pipeline.Concurrency = DefaultConcurrency
	}
	if c.Pipeline.FetchTimeout == 0 {
		c.Pipeline.FetchTimeout = DefaultFetchTimeout
	}
	if c.Pipeline.RunTimeout == 0 {
		c.Pipeline.RunTimeout = DefaultRunTimeout
	}
	if len(c.Pipeline.Windows) == 0 {
		c.Pipeline.Windows = append([]int(nil), DefaultWindows...)
	}
	if len(c.Pipeline.TrackedFields) == 0 {
		c.Pipeline.TrackedFields = append([]string(nil), DefaultTrackedFields...)
	}
	if len(c.Pipeline.RollingFields) == 0 {
		c.Pipeline.RollingFields = append([]string(nil), DefaultRollingFields...)
	}
	if c.Pipeline.PointsField == "" {
		c.Pipeline.PointsField = DefaultPointsField
	}

	if c.Cache.Dir == "" {
		c.Cache.Dir = DefaultCacheDir
	}

	// Matcher defaults
	if c.Matcher.Threshold == 0 {
		c.Matcher.Threshold = DefaultMatchThreshold
	}
	if c.Matcher.TeamThreshold == 0 {
		c.Matcher.TeamThreshold = DefaultTeamThreshold
	}
	if c.Matcher.Resolver == "" {
		c.Matcher.Resolver = DefaultResolver
	}

	if c.Database.Enabled() {
		applyDBDefaults(&c.Database)
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

func applyProviderDefaults(p *ProviderConfig, baseURL string) {
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	if p.Timeout == 0 {
		p.Timeout = DefaultAPITimeout
	}
	if p.MaxRetries == 0 {
		p.MaxRetries = DefaultMaxRetries
	}
	if p.RetryBackoff == 0 {
		p.RetryBackoff = DefaultRetryBackoff
	}
	if p.MaxBackoff == 0 {
		p.MaxBackoff = DefaultMaxBackoff
	}
	if p.DefaultRetryAfter == 0 {
		p.DefaultRetryAfter = DefaultRetryAfter
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
