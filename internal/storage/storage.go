package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/config"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/database"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage/memory"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage/postgres"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage/redis"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Store is a flat key-value store of JSON values with last-write-wins
// semantics.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Close() error
}

// Open connects the backend named in cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case BackendMemory, "":
		slog.Info("using in-memory storage; counters are lost on restart")
		return memory.New(), nil

	case BackendPostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("opening postgres storage: %w", err)
		}

		store := postgres.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}

		slog.Info("using postgres storage", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return store, nil

	case BackendRedis:
		store, err := redis.New(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("opening redis storage: %w", err)
		}

		slog.Info("using redis storage", "addr", cfg.Redis.Addr)

		return store, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
