package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL       = "http://localhost:8080/api"
	DefaultAPITimeout    = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryBackoff  = 1 * time.Second
	DefaultCatalogMode   = "server"
	DefaultPageSize      = 50
	DefaultFullLoadLimit = 1000
	DefaultMissingFields = "include"
	DefaultDetailTTL     = 30 * time.Second
	DefaultPollInterval  = 5 * time.Minute
	DefaultPollTimeout   = 30 * time.Second
	DefaultBackend       = "sqlite"
	DefaultWatchlistKey  = "crypto_agent_favorites"
	DefaultSQLitePath    = "alpha.db"
	DefaultDBPort        = 5432
	DefaultDBSSLMode     = "prefer"
	DefaultMaxConns      = 4
	DefaultMinConns      = 1
	DefaultRedisAddr     = "localhost:6379"
	DefaultMetricsPort   = 9090
	DefaultMetricsPath   = "/metrics"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}
	if c.API.RateLimit > 0 && c.API.RateBurst == 0 {
		c.API.RateBurst = 1
	}

	// Catalog defaults
	if c.Catalog.Mode == "" {
		c.Catalog.Mode = DefaultCatalogMode
	}
	if c.Catalog.PageSize == 0 {
		c.Catalog.PageSize = DefaultPageSize
	}
	if c.Catalog.FullLoadLimit == 0 {
		c.Catalog.FullLoadLimit = DefaultFullLoadLimit
	}
	if c.Catalog.MissingFields == "" {
		c.Catalog.MissingFields = DefaultMissingFields
	}
	if c.Catalog.DetailTTL == 0 {
		c.Catalog.DetailTTL = DefaultDetailTTL
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Timeout == 0 {
		c.Poller.Timeout = DefaultPollTimeout
	}

	// Watchlist defaults
	if c.Watchlist.Backend == "" {
		c.Watchlist.Backend = DefaultBackend
	}
	if c.Watchlist.Key == "" {
		c.Watchlist.Key = DefaultWatchlistKey
	}
	if c.Watchlist.SQLitePath == "" {
		c.Watchlist.SQLitePath = DefaultSQLitePath
	}
	applyDBDefaults(&c.Watchlist.Postgres)
	if c.Watchlist.Redis.Addr == "" {
		c.Watchlist.Redis.Addr = DefaultRedisAddr
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = DefaultLogMaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = DefaultLogMaxAgeDays
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
