package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
api:
  base_url: https://alpha.example.com/api
  timeout: 10s
  rate_limit: 5
catalog:
  mode: client_paged
  page_size: 25
  refresh_on_reset: true
watchlist:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://alpha.example.com/api" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://alpha.example.com/api")
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want %v", cfg.API.Timeout, 10*time.Second)
	}
	if cfg.Catalog.Mode != "client_paged" || cfg.Catalog.PageSize != 25 || !cfg.Catalog.RefreshOnReset {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Watchlist.Redis.Addr != "redis:6379" || cfg.Watchlist.Redis.DB != 2 {
		t.Errorf("Watchlist.Redis = %+v", cfg.Watchlist.Redis)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
watchlist:
  backend: postgres
  postgres:
    host: localhost
    name: alpha
    user: alpha
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Watchlist.Postgres.Password != "secret123" {
		t.Errorf("Watchlist.Postgres.Password = %q, want %q", cfg.Watchlist.Postgres.Password, "secret123")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example.com/api")
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example.com/api" {
		t.Errorf("API.BaseURL = %q, want env value", cfg.API.BaseURL)
	}
	if cfg.API.APIKey != "env-key" {
		t.Errorf("API.APIKey = %q, want env value", cfg.API.APIKey)
	}

	// The file wins over the environment.
	path := writeTempFile(t, "api:\n  base_url: http://file.example.com/api\n")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://file.example.com/api" {
		t.Errorf("API.BaseURL = %q, want file value", cfg.API.BaseURL)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ALPHA_TEST_FROM_DOTENV=yes\n"), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("ALPHA_TEST_FROM_DOTENV") })

	if err := LoadEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if got := os.Getenv("ALPHA_TEST_FROM_DOTENV"); got != "yes" {
		t.Errorf("ALPHA_TEST_FROM_DOTENV = %q, want %q", got, "yes")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")

	path := writeTempFile(t, "catalog:\n  page_size: 20\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want default %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.Catalog.PageSize != 20 {
		t.Errorf("Catalog.PageSize = %d, want 20", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.Mode != DefaultCatalogMode {
		t.Errorf("Catalog.Mode = %q, want default %q", cfg.Catalog.Mode, DefaultCatalogMode)
	}
	if cfg.Catalog.RefreshOnReset {
		t.Error("Catalog.RefreshOnReset should default to false")
	}
	if cfg.Poller.Interval != DefaultPollInterval {
		t.Errorf("Poller.Interval = %v, want default %v", cfg.Poller.Interval, DefaultPollInterval)
	}
	if cfg.Watchlist.Key != DefaultWatchlistKey {
		t.Errorf("Watchlist.Key = %q, want default %q", cfg.Watchlist.Key, DefaultWatchlistKey)
	}
	if cfg.Watchlist.Postgres.Port != DefaultDBPort {
		t.Errorf("Watchlist.Postgres.Port = %d, want default %d", cfg.Watchlist.Postgres.Port, DefaultDBPort)
	}
	if cfg.Metrics.Port != DefaultMetricsPort {
		t.Errorf("Metrics.Port = %d, want default %d", cfg.Metrics.Port, DefaultMetricsPort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func validConfig() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "/api" },
			wantErr: `api.base_url must be an absolute URL, got "/api"`,
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Catalog.Mode = "hybrid" },
			wantErr: `catalog.mode must be server, client or client_paged, got "hybrid"`,
		},
		{
			name:    "full load below page size",
			mutate:  func(c *Config) { c.Catalog.FullLoadLimit = 10 },
			wantErr: "catalog.full_load_limit (10) cannot be less than page_size (50)",
		},
		{
			name:    "unknown missing policy",
			mutate:  func(c *Config) { c.Catalog.MissingFields = "zero" },
			wantErr: `catalog.missing_fields must be include or exclude, got "zero"`,
		},
		{
			name: "missing postgres password",
			mutate: func(c *Config) {
				c.Watchlist.Backend = "postgres"
				c.Watchlist.Postgres.Host = "db"
				c.Watchlist.Postgres.Name = "alpha"
				c.Watchlist.Postgres.User = "alpha"
			},
			wantErr: "watchlist.postgres.password is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Watchlist.Backend = "postgres"
				c.Watchlist.Postgres = DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 5, MinConns: 10}
			},
			wantErr: "watchlist.postgres.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Watchlist.Backend = "etcd" },
			wantErr: `watchlist.backend must be sqlite, postgres, redis or memory, got "etcd"`,
		},
		{
			name:    "bad metrics port",
			mutate:  func(c *Config) { c.Metrics.Port = 70000 },
			wantErr: "metrics.port must be between 1 and 65535, got 70000",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: `logging.level must be debug, info, warn or error, got "trace"`,
		},
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
