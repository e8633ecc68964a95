package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.RateLimit < 0 {
		return errors.New("api.rate_limit must be >= 0")
	}

	switch c.Catalog.Mode {
	case "server", "client", "client_paged":
	default:
		return fmt.Errorf("catalog.mode must be server, client or client_paged, got %q", c.Catalog.Mode)
	}
	if c.Catalog.PageSize < 1 {
		return errors.New("catalog.page_size must be >= 1")
	}
	if c.Catalog.FullLoadLimit < c.Catalog.PageSize {
		return fmt.Errorf("catalog.full_load_limit (%d) cannot be less than page_size (%d)", c.Catalog.FullLoadLimit, c.Catalog.PageSize)
	}
	switch c.Catalog.MissingFields {
	case "include", "exclude":
	default:
		return fmt.Errorf("catalog.missing_fields must be include or exclude, got %q", c.Catalog.MissingFields)
	}

	if c.Poller.Interval <= 0 {
		return errors.New("poller.interval must be positive")
	}

	switch c.Watchlist.Backend {
	case "sqlite", "memory":
	case "postgres":
		if err := c.Watchlist.Postgres.validate("watchlist.postgres"); err != nil {
			return err
		}
	case "redis":
		if c.Watchlist.Redis.Addr == "" {
			return errors.New("watchlist.redis.addr is required")
		}
	default:
		return fmt.Errorf("watchlist.backend must be sqlite, postgres, redis or memory, got %q", c.Watchlist.Backend)
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
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
