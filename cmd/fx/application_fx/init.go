package application_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"lumijob/internal/repositories"
	"lumijob/internal/services"
	"lumijob/pkg/events"
)

var Module = fx.Provide(
	providePipelineRepo, provideApplicationService, providePipelineService)

func providePipelineRepo(db *gorm.DB) repositories.PipelineRepository {
	return repositories.NewPipelineRepository(db)
}

func provideApplicationService(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	jobRepo repositories.JobRepository,
	pipelineRepo repositories.PipelineRepository,
	quota services.QuotaServiceInterface,
	publisher events.Publisher,
	logger *zap.Logger,
) services.ApplicationServiceInterface {
	return services.NewApplicationService(accountRepo, profileRepo, jobRepo, pipelineRepo, quota, publisher, logger)
}

func providePipelineService(
	jobRepo repositories.JobRepository,
	pipelineRepo repositories.PipelineRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) services.PipelineServiceInterface {
	return services.NewPipelineService(jobRepo, pipelineRepo, publisher, logger)
}
