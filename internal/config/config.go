package config

import "time"

// Config is the root configuration for the alpha client.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Poller    PollerConfig    `yaml:"poller"`
	Watchlist WatchlistConfig `yaml:"watchlist"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig holds backend API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	RateLimit    float64       `yaml:"rate_limit"` // Requests per second, 0 disables
	RateBurst    int           `yaml:"rate_burst"`
}

// CatalogConfig holds catalog store settings.
type CatalogConfig struct {
	Mode           string        `yaml:"mode"` // server, client or client_paged
	PageSize       int           `yaml:"page_size"`
	FullLoadLimit  int           `yaml:"full_load_limit"`
	MissingFields  string        `yaml:"missing_fields"` // include or exclude
	RefreshOnReset bool          `yaml:"refresh_on_reset"`
	DetailTTL      time.Duration `yaml:"detail_ttl"`
}

// PollerConfig holds catalog poller settings.
type PollerConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// WatchlistConfig selects and configures the favourites backend.
type WatchlistConfig struct {
	Backend    string      `yaml:"backend"` // sqlite, postgres, redis or memory
	Key        string      `yaml:"key"`
	SQLitePath string      `yaml:"sqlite_path"`
	Postgres   DBConfig    `yaml:"postgres"`
	Redis      RedisConfig `yaml:"redis"`
}

// DBConfig holds a single database connection.
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

// RedisConfig holds a Redis connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`   // Optional rotating log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}
