package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type JobServiceInterface interface {
	PostJob(ctx context.Context, req request_models.PostJobRequest) (uuid.UUID, Rejection, error)
	ListCompanyJobs(ctx context.Context, companyEmail string) ([]db_models.JobPosting, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db_models.JobPosting, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]db_models.JobPosting, error)
	SearchJobs(ctx context.Context, term string) ([]db_models.JobPosting, error)
	FilterJobs(ctx context.Context, filter repositories.JobFilter) ([]db_models.JobPosting, error)
}

type JobService struct {
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
	quota       QuotaServiceInterface
	now         func() time.Time
}

func NewJobService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	quota QuotaServiceInterface,
) JobServiceInterface {
	return &JobService{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		quota:       quota,
		now:         time.Now,
	}
}

// PostJob creates a posting when the company still has post quota.
func (j *JobService) PostJob(ctx context.Context, req request_models.PostJobRequest) (uuid.UUID, Rejection, error) {
	email := normalizeEmail(req.Email)
	allowed, err := j.quota.CanAccountPost(ctx, email)
	if err != nil {
		return uuid.Nil, "", err
	}
	if !allowed {
		return uuid.Nil, RejectQuotaExceeded, nil
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		company, err := j.profileRepo.FindCompanyByEmail(ctx, email)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("find company profile: %w", utils.ErrDatabaseError)
		}
		if company != nil {
			companyName = company.Name
		}
	}

	job := &db_models.JobPosting{
		CompanyEmail: email,
		CompanyName:  companyName,
		Title:        strings.TrimSpace(req.Title),
		Category:     req.Category,
		JobType:      req.JobType,
		Salary:       req.Salary,
		Location:     req.Location,
		Description:  req.Description,
		Skills:       datatypes.NewJSONSlice(req.Skills),
		Deadline:     req.Deadline,
		PostedDate:   req.Date,
	}
	if job.PostedDate == "" {
		job.PostedDate = j.now().UTC().Format(time.DateOnly)
	}
	if err := j.jobRepo.Create(ctx, job); err != nil {
		return uuid.Nil, "", fmt.Errorf("create job: %w", utils.ErrDatabaseError)
	}
	return job.ID, "", nil
}

func (j *JobService) ListCompanyJobs(ctx context.Context, companyEmail string) ([]db_models.JobPosting, error) {
	jobs, err := j.jobRepo.ListByCompany(ctx, normalizeEmail(companyEmail))
	if err != nil {
		return nil, fmt.Errorf("list company jobs: %w", utils.ErrDatabaseError)
	}
	return jobs, nil
}

func (j *JobService) GetJob(ctx context.Context, id uuid.UUID) (*db_models.JobPosting, error) {
	job, err := j.jobRepo.FindByIDWithApplicants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find job: %w", utils.ErrDatabaseError)
	}
	if job == nil {
		return nil, utils.ErrJobNotFound
	}
	return job, nil
}

func (j *JobService) ListJobs(ctx context.Context, page, pageSize int) ([]db_models.JobPosting, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	jobs, err := j.jobRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", utils.ErrDatabaseError)
	}
	return jobs, nil
}

func (j *JobService) SearchJobs(ctx context.Context, term string) ([]db_models.JobPosting, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, utils.ErrInvalidInput
	}
	jobs, err := j.jobRepo.SearchByTitle(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", utils.ErrDatabaseError)
	}
	return jobs, nil
}

func (j *JobService) FilterJobs(ctx context.Context, filter repositories.JobFilter) ([]db_models.JobPosting, error) {
	jobs, err := j.jobRepo.Filter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("filter jobs: %w", utils.ErrDatabaseError)
	}
	return jobs, nil
}
