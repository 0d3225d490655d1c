package services

import (
	"context"
	"fmt"

	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

// QuotaServiceInterface answers whether an account may post or apply.
// Usage is counted on every call; nothing is reserved or decremented.
type QuotaServiceInterface interface {
	CanAccountPost(ctx context.Context, email string) (bool, error)
	CanAccountApply(ctx context.Context, email string) (bool, error)
}

type QuotaService struct {
	accountRepo  repositories.AccountRepository
	jobRepo      repositories.JobRepository
	pipelineRepo repositories.PipelineRepository
}

func NewQuotaService(
	accountRepo repositories.AccountRepository,
	jobRepo repositories.JobRepository,
	pipelineRepo repositories.PipelineRepository,
) QuotaServiceInterface {
	return &QuotaService{
		accountRepo:  accountRepo,
		jobRepo:      jobRepo,
		pipelineRepo: pipelineRepo,
	}
}

func (q *QuotaService) CanAccountPost(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	account, err := q.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("find account: %w", utils.ErrDatabaseError)
	}
	if account == nil {
		return false, utils.ErrAccountNotFound
	}

	used, err := q.jobRepo.CountByCompany(ctx, email)
	if err != nil {
		return false, fmt.Errorf("count postings: %w", utils.ErrDatabaseError)
	}
	return used < int64(account.CanPost), nil
}

func (q *QuotaService) CanAccountApply(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	account, err := q.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("find account: %w", utils.ErrDatabaseError)
	}
	if account == nil {
		return false, utils.ErrAccountNotFound
	}

	used, err := q.pipelineRepo.CountApplicationsByCandidate(ctx, email)
	if err != nil {
		return false, fmt.Errorf("count applications: %w", utils.ErrDatabaseError)
	}
	return used < int64(account.CanApply), nil
}
