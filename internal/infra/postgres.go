package infra

import (
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"lumijob/internal/config"
	"lumijob/internal/models/db_models"
)

// InitPostgresql opens the database. DBDriver "pq" routes the connection
// through lib/pq instead of the default pgx driver.
func InitPostgresql(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, errors.New("postgres url is required")
	}

	pgCfg := postgres.Config{DSN: cfg.PostgresURL}
	if cfg.DBDriver == "pq" {
		pgCfg.DriverName = "postgres"
	}

	db, err := gorm.Open(postgres.New(pgCfg), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		logger.Info("database migrated")
	}
	logger.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(db_models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("get database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("close database connection", zap.Error(err))
	} else {
		logger.Info("database connection closed")
	}
}
