package admin_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"lumijob/internal/config"
	"lumijob/internal/repositories"
	"lumijob/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideReconcileService, provideDashboardRepo, provideDashboardService),
	fx.Invoke(startSchedule),
)

func provideReconcileService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	pipelineRepo repositories.PipelineRepository,
	logger *zap.Logger,
) services.ReconcileServiceInterface {
	return services.NewReconcileService(jobRepo, profileRepo, pipelineRepo, logger)
}

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(repo repositories.DashboardRepository) services.DashboardService {
	return services.NewDashboardService(repo)
}

// startSchedule runs the reconciler on the configured interval until the
// app stops. A zero interval leaves it to the admin endpoint.
func startSchedule(lc fx.Lifecycle, cfg config.Config, svc services.ReconcileServiceInterface, logger *zap.Logger) {
	interval, _ := config.ParseDuration(cfg.ReconcileInterval)
	if interval == 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("reconcile schedule started", zap.Duration("interval", interval))
			go func() {
				defer close(done)
				svc.RunEvery(ctx, interval)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
