package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if err := c.Fantasy.validate("fantasy"); err != nil {
		return err
	}
	if err := c.Analytics.validate("analytics"); err != nil {
		return err
	}
	if c.Analytics.League == "" {
		return errors.New("analytics.league is required")
	}

	if c.Pipeline.Concurrency < 1 {
		return errors.New("pipeline.concurrency must be >= 1")
	}
	if c.Pipeline.FetchTimeout < 0 || c.Pipeline.RunTimeout < 0 {
		return errors.New("pipeline timeouts must not be negative")
	}
	for _, w := range c.Pipeline.Windows {
		if w < 1 {
			return fmt.Errorf("pipeline.windows must be >= 1, got %d", w)
		}
	}
	if c.Pipeline.PointsField == "" {
		return errors.New("pipeline.points_field is required")
	}

	if c.Cache.Dir == "" {
		return errors.New("cache.dir is required")
	}

	if c.Matcher.Threshold <= 0 || c.Matcher.Threshold > 1 {
		return fmt.Errorf("matcher.threshold must be in (0, 1], got %v", c.Matcher.Threshold)
	}
	if c.Matcher.TeamThreshold <= 0 || c.Matcher.TeamThreshold > 1 {
		return fmt.Errorf("matcher.team_threshold must be in (0, 1], got %v", c.Matcher.TeamThreshold)
	}
	switch c.Matcher.Resolver {
	case ResolverReject, ResolverInteractive:
	default:
		return fmt.Errorf("matcher.resolver must be %q or %q, got %q", ResolverReject, ResolverInteractive, c.Matcher.Resolver)
	}

	if c.Database.Enabled() {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func (p *ProviderConfig) validate(prefix string) error {
	if p.BaseURL == "" {
		return fmt.Errorf("%s.base_url is required", prefix)
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("%s.max_retries must be >= 0", prefix)
	}
	if p.MaxBackoff < p.RetryBackoff {
		return fmt.Errorf("%s.max_backoff (%v) cannot be less than retry_backoff (%v)", prefix, p.MaxBackoff, p.RetryBackoff)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
