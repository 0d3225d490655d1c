package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"lumijob/internal/repositories"
	"lumijob/internal/services"
	"lumijob/pkg/middleware"
	"lumijob/pkg/storage"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideProfileRepo, provideRoleResolver)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideProfileRepo(db *gorm.DB) repositories.ProfileRepository {
	return repositories.NewProfileRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	store storage.ObjectStore,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, profileRepo, store, logger)
}

func provideRoleResolver(svc services.AccountServiceInterface) middleware.RoleResolver {
	return svc
}
