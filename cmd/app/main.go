package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"lumijob/cmd/fx/account_fx"
	"lumijob/cmd/fx/admin_fx"
	"lumijob/cmd/fx/application_fx"
	"lumijob/cmd/fx/config_fx"
	"lumijob/cmd/fx/controllers_fx"
	"lumijob/cmd/fx/db_fx"
	"lumijob/cmd/fx/job_fx"
	"lumijob/cmd/fx/mail_fx"
	"lumijob/cmd/fx/memcache_fx"
	"lumijob/cmd/fx/redis_fx"
	"lumijob/cmd/fx/storage_fx"
	"lumijob/cmd/fx/subscription_fx"
	"lumijob/internal/api"
	"lumijob/internal/config"
	"lumijob/pkg/middleware"
	"lumijob/pkg/utils"
)

const tokenTTL = time.Hour

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		db_fx.Module,
		redis_fx.Module,
		storage_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		job_fx.Module,
		mail_fx.Module,
		application_fx.Module,
		subscription_fx.Module,
		admin_fx.Module,
		controllers_fx.Module,

		fx.Provide(provideTokenValidator),
		fx.Provide(api.NewRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func provideTokenValidator(cfg config.Config) middleware.TokenValidator {
	return utils.NewJWTManager(cfg.JWTSecret, tokenTTL)
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
