package bootstrap

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"explorer/internal/bootstrap/config"
	"explorer/internal/bootstrap/database"
	"explorer/internal/infrastructure/metrics"
	"explorer/internal/infrastructure/persistence/migration"
)

type App struct {
	Config  config.Config
	DB      *gorm.DB
	Metrics *metrics.Collector
}

// Migrator returns the schema migrator over the full unit list.
func (a *App) Migrator() (*migration.Migrator, error) {
	if a == nil || a.DB == nil {
		return nil, errors.New("app database is required")
	}
	return migration.NewDefault(a.DB)
}

// Ready backs the health endpoint.
func (a *App) Ready(ctx context.Context) error {
	if a == nil || a.DB == nil {
		return errors.New("app database is required")
	}
	return database.Ping(ctx, a.DB)
}
