package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"lumijob/internal/api/controllers"
	"lumijob/internal/config"
	"lumijob/internal/infra"
)

var Module = fx.Provide(
	provideDB, providePinger)

func provideDB(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return db, nil
}

func providePinger(db *gorm.DB) (controllers.Pinger, error) {
	return db.DB()
}
