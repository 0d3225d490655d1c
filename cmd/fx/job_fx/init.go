package job_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"lumijob/internal/repositories"
	"lumijob/internal/services"
)

var Module = fx.Provide(
	provideJobRepo,
	provideBookmarkRepo,
	provideQuotaService,
	provideJobService,
	provideBookmarkService,
)

func provideJobRepo(db *gorm.DB) repositories.JobRepository {
	return repositories.NewJobRepository(db)
}

func provideBookmarkRepo(db *gorm.DB) repositories.BookmarkRepository {
	return repositories.NewBookmarkRepository(db)
}

func provideQuotaService(
	accountRepo repositories.AccountRepository,
	jobRepo repositories.JobRepository,
	pipelineRepo repositories.PipelineRepository,
) services.QuotaServiceInterface {
	return services.NewQuotaService(accountRepo, jobRepo, pipelineRepo)
}

func provideJobService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	quota services.QuotaServiceInterface,
) services.JobServiceInterface {
	return services.NewJobService(jobRepo, profileRepo, quota)
}

func provideBookmarkService(bookmarkRepo repositories.BookmarkRepository) services.BookmarkServiceInterface {
	return services.NewBookmarkService(bookmarkRepo)
}
