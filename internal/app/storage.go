package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/infrastructure/memory"
	"github.com/holmes-app/materialgirl/internal/infrastructure/mongo"
	"github.com/holmes-app/materialgirl/internal/infrastructure/pg"
	"github.com/holmes-app/materialgirl/internal/infrastructure/redis"
	"github.com/holmes-app/materialgirl/internal/pkg/codec"
	"github.com/holmes-app/materialgirl/internal/ports"
)

// backend — выбранное хранилище и его дополнительные возможности.
type backend struct {
	storage ports.IStorage[domain.Snapshot]
	pinger  ports.IPinger
	purger  ports.IPurger // nil — хранилище чистит себя само (TTL)
	close   func()
}

// openStorage подключается к хранилищу по STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg Config, log *slog.Logger) (*backend, error) {
	c, err := codec.ByName(cfg.Codec)
	if err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case DriverMemory:
		s := memory.New[domain.Snapshot]()
		return &backend{storage: s, pinger: s, purger: s, close: func() {}}, nil

	case DriverRedis:
		cli, err := redis.New(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		s := redis.NewStorage[domain.Snapshot](cli, c, log,
			redis.WithExpiredPrefix(cfg.Redis.ExpiredPrefix),
			redis.WithLockSuffix(cfg.Redis.LockSuffix))
		return &backend{storage: s, pinger: s, close: func() { _ = cli.Close() }}, nil

	case DriverPostgres:
		db, err := pg.New(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		s := pg.NewStorage[domain.Snapshot](db, c, log)
		return &backend{storage: s, pinger: s, purger: s, close: func() { _ = db.Close() }}, nil

	case DriverMongo:
		cli, err := mongo.New(ctx, &cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		if err := cli.EnsureIndexes(ctx); err != nil {
			_ = cli.Close(context.Background())
			return nil, err
		}
		s := mongo.NewStorage[domain.Snapshot](cli, c, log)
		return &backend{storage: s, pinger: s, close: func() { _ = cli.Close(context.Background()) }}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
