package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lumijob/internal/models/db_models"
)

type JobFilter struct {
	Category string
	JobType  string
	Salary   string
	Date     string
}

type JobRepository interface {
	Create(ctx context.Context, job *db_models.JobPosting) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.JobPosting, error)
	FindByIDWithApplicants(ctx context.Context, id uuid.UUID) (*db_models.JobPosting, error)
	ListByCompany(ctx context.Context, companyEmail string) ([]db_models.JobPosting, error)
	CountByCompany(ctx context.Context, companyEmail string) (int64, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.JobPosting, error)
	SearchByTitle(ctx context.Context, term string) ([]db_models.JobPosting, error)
	Filter(ctx context.Context, filter JobFilter) ([]db_models.JobPosting, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *db_models.JobPosting) error {
	return r.db.WithContext(ctx).Omit("Applicants").Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.JobPosting, error) {
	var job db_models.JobPosting
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindByIDWithApplicants(ctx context.Context, id uuid.UUID) (*db_models.JobPosting, error) {
	var job db_models.JobPosting
	err := r.db.WithContext(ctx).
		Preload("Applicants", func(db *gorm.DB) *gorm.DB {
			return db.Order("applied_at ASC, id ASC")
		}).
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListByCompany(ctx context.Context, companyEmail string) ([]db_models.JobPosting, error) {
	var jobs []db_models.JobPosting
	err := r.db.WithContext(ctx).
		Preload("Applicants", func(db *gorm.DB) *gorm.DB {
			return db.Order("applied_at ASC, id ASC")
		}).
		Where("company_email = ?", companyEmail).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) CountByCompany(ctx context.Context, companyEmail string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.JobPosting{}).
		Where("company_email = ?", companyEmail).
		Count(&n).Error
	return n, err
}

func (r *jobRepository) List(ctx context.Context, page, pageSize int) ([]db_models.JobPosting, error) {
	var jobs []db_models.JobPosting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) SearchByTitle(ctx context.Context, term string) ([]db_models.JobPosting, error) {
	var jobs []db_models.JobPosting
	pattern := "%" + strings.ToLower(escapeLike(term)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Filter(ctx context.Context, filter JobFilter) ([]db_models.JobPosting, error) {
	q := r.db.WithContext(ctx).Model(&db_models.JobPosting{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.JobType != "" {
		q = q.Where("job_type = ?", filter.JobType)
	}
	if filter.Salary != "" {
		q = q.Where("salary = ?", filter.Salary)
	}
	if filter.Date != "" {
		q = q.Where("posted_date = ?", filter.Date)
	}
	var jobs []db_models.JobPosting
	err := q.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
