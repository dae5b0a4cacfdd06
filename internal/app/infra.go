package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/fx"

	"github.com/Alijeyrad/taadol_backend/config"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/pkg/database"
	"github.com/Alijeyrad/taadol_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/taadol_backend/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideMongo),
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideRepo),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideOTel),
)

func ProvideMongo(lc fx.Lifecycle, cfg *config.Config) (*database.DB, error) {
	db, err := database.NewMongo(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Database.Indexes.EnsureOnStart {
				return nil
			}
			slog.Info("ensuring mongodb indexes", "database", cfg.Database.Name)
			return database.EnsureIndexes(ctx, db)
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing mongodb connection")
			return db.Close(ctx)
		},
	})
	return db, nil
}

func ProvideDatabase(db *database.DB) *mongo.Database {
	return db.Database()
}

func ProvideRepo(db *mongo.Database) *repo.Client {
	return repo.NewClient(db)
}

// ProvideRedis returns a nil client when redis.addr is empty; the HTTP
// limiter then keeps its counters in memory.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if errors.Is(err, redispkg.ErrDisabled) {
		slog.Info("redis disabled, rate limiter uses in-memory storage")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.ConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
