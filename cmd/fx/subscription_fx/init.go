package subscription_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"lumijob/internal/repositories"
	"lumijob/internal/services"
)

var Module = fx.Options(
	fx.Provide(providePlanRepo, provideSubscriptionService),
	fx.Invoke(seedPlans),
)

func providePlanRepo(db *gorm.DB) repositories.PlanRepository {
	return repositories.NewPlanRepository(db)
}

func provideSubscriptionService(
	planRepo repositories.PlanRepository,
	accountRepo repositories.AccountRepository,
	logger *zap.Logger,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(planRepo, accountRepo, logger)
}

func seedPlans(lc fx.Lifecycle, svc services.SubscriptionServiceInterface) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.SeedPlans(ctx)
		},
	})
}
