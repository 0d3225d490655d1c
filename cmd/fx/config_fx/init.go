package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"lumijob/internal/config"
	"lumijob/pkg/logging"
)

var Module = fx.Provide(
	provideConfig, provideLogger)

func provideConfig() (config.Config, error) {
	return config.Load("")
}

func provideLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
