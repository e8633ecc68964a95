package watchlist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/baolongdinh/alpha-agent/internal/config"
	"github.com/baolongdinh/alpha-agent/internal/database"
)

// Open connects the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.WatchlistConfig) (KV, error) {
	switch cfg.Backend {
	case "", "sqlite":
		return NewSQLiteKV(cfg.SQLitePath)
	case "memory":
		return NewMemoryKV(), nil
	case "postgres":
		pool, err := database.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		kv, err := NewPostgresKV(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return kv, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv, err := NewRedisKV(ctx, client)
		if err != nil {
			client.Close()
			return nil, err
		}
		return kv, nil
	}
	return nil, fmt.Errorf("unknown watchlist backend %q", cfg.Backend)
}
