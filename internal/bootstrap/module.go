package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"explorer/internal/bootstrap/config"
	"explorer/internal/bootstrap/database"
	"explorer/internal/bootstrap/logging"
	cacheinfra "explorer/internal/infrastructure/cache"
	"explorer/internal/infrastructure/metrics"
	"explorer/internal/infrastructure/persistence/repository"
	"explorer/internal/infrastructure/persistence/uow"
	"explorer/internal/ports"
	"explorer/internal/usecase/explorer"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(metrics.NewCollector),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			repository.NewExplorerRepository,
			fx.As(new(ports.ExplorerRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			uow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewKVCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideObserver),
	fx.Provide(explorer.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.Close(); err != nil {
				return err
			}
			logging.Info(logCtx, "database connection closed")
			return nil
		},
	})

	return db, nil
}

// provideObserver routes usecase observations to the collector unless metrics are disabled.
func provideObserver(cfg config.Config, collector *metrics.Collector) ports.Observer {
	if !cfg.Metrics.Enabled {
		return ports.NopObserver{}
	}
	return collector
}

func provideApp(cfg config.Config, db *gorm.DB, collector *metrics.Collector) *App {
	return &App{
		Config:  cfg,
		DB:      db,
		Metrics: collector,
	}
}
