package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_notifier/internal/platform/config"
	infradb "stock_notifier/internal/platform/db"
	infrahandler "stock_notifier/internal/platform/http/handler"
	infraredis "stock_notifier/internal/platform/redis"
)

// Infra holds the optional backing services. DB is nil with the memory store
// driver and Redis is nil when it is not configured or unreachable.
type Infra struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// OpenInfra connects to the configured backing services. A database failure is
// fatal; Redis is optional and only logged when unavailable.
func OpenInfra(ctx context.Context, env config.Env, logger *slog.Logger) (*Infra, error) {
	infra := &Infra{}

	if env.UsesDatabase() {
		db, err := infradb.Open(env.DB())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		infra.DB = db
	}

	rdb, err := infraredis.NewRedisClient(ctx, env.Redis())
	switch {
	case err == nil:
		infra.Redis = rdb
	case errors.Is(err, infraredis.ErrNotConfigured):
		logger.Debug("redis not configured")
	default:
		logger.Warn("redis unavailable, running without it", "error", err)
	}
	return infra, nil
}

// HealthChecks returns one check per connected backing service.
func (i *Infra) HealthChecks() []infrahandler.Check {
	var checks []infrahandler.Check
	if i.DB != nil {
		checks = append(checks, infrahandler.Check{Name: "database", Probe: func(ctx context.Context) error {
			sqlDB, err := i.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}})
	}
	if i.Redis != nil {
		checks = append(checks, infrahandler.Check{Name: "redis", Probe: func(ctx context.Context) error {
			return i.Redis.Ping(ctx).Err()
		}})
	}
	return checks
}

// Close releases every open connection.
func (i *Infra) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
