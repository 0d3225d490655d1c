package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lumijob/internal/models/db_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/events"
	"lumijob/pkg/utils"
)

type ApplicationServiceInterface interface {
	Apply(ctx context.Context, email string, jobID uuid.UUID, coverLetter string) (ApplyResult, error)
	HasAlreadyApplied(ctx context.Context, email string, jobID uuid.UUID) (bool, error)
	BuildSnapshot(ctx context.Context, email string) (*db_models.ApplicantSnapshot, Rejection, error)
	ListAppliedJobs(ctx context.Context, email string) ([]db_models.ApplicationRecord, error)
}

// ApplyResult is either a Rejection or the id of the new ledger record.
type ApplyResult struct {
	Rejection  Rejection
	InsertedID uuid.UUID
}

func (r ApplyResult) Rejected() bool { return r.Rejection != "" }

type ApplicationService struct {
	accountRepo  repositories.AccountRepository
	profileRepo  repositories.ProfileRepository
	jobRepo      repositories.JobRepository
	pipelineRepo repositories.PipelineRepository
	quota        QuotaServiceInterface
	publisher    events.Publisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewApplicationService(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	jobRepo repositories.JobRepository,
	pipelineRepo repositories.PipelineRepository,
	quota QuotaServiceInterface,
	publisher events.Publisher,
	logger *zap.Logger,
) ApplicationServiceInterface {
	return &ApplicationService{
		accountRepo:  accountRepo,
		profileRepo:  profileRepo,
		jobRepo:      jobRepo,
		pipelineRepo: pipelineRepo,
		quota:        quota,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

// HasAlreadyApplied checks the ledger and the job's applicant rows; a match
// on either side counts.
func (s *ApplicationService) HasAlreadyApplied(ctx context.Context, email string, jobID uuid.UUID) (bool, error) {
	email = normalizeEmail(email)
	inLedger, err := s.pipelineRepo.HasApplicationRecord(ctx, email, jobID)
	if err != nil {
		return false, fmt.Errorf("check ledger: %w", utils.ErrDatabaseError)
	}
	if inLedger {
		return true, nil
	}
	onJob, err := s.pipelineRepo.HasApplicantSnapshot(ctx, jobID, email)
	if err != nil {
		return false, fmt.Errorf("check applicants: %w", utils.ErrDatabaseError)
	}
	return onJob, nil
}

// BuildSnapshot copies the candidate's public profile into a new applicant
// row. It reads only.
func (s *ApplicationService) BuildSnapshot(ctx context.Context, email string) (*db_models.ApplicantSnapshot, Rejection, error) {
	email = normalizeEmail(email)
	profile, err := s.profileRepo.FindCandidateByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("find candidate profile: %w", utils.ErrDatabaseError)
	}
	if profile == nil {
		return nil, RejectProfileMissing, nil
	}
	if profile.Resume == "" {
		return nil, RejectResumeMissing, nil
	}

	return &db_models.ApplicantSnapshot{
		Email:       email,
		ApplicantID: profile.ID,
		Name:        profile.Name,
		Photo:       profile.Photo,
		City:        profile.City,
		Country:     profile.Country,
		Position:    profile.Position,
		Status:      profile.Status,
		SalaryMin:   profile.SalaryMin,
		SalaryMax:   profile.SalaryMax,
		AppliedAt:   s.now().UnixMilli(),
		DndStats:    db_models.StatusApplicant,
		Resume:      profile.Resume,
	}, "", nil
}

func (s *ApplicationService) Apply(ctx context.Context, email string, jobID uuid.UUID, coverLetter string) (ApplyResult, error) {
	email = normalizeEmail(email)

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("find account: %w", utils.ErrDatabaseError)
	}
	if account == nil {
		return ApplyResult{}, utils.ErrAccountNotFound
	}
	if account.Role != db_models.RoleCandidate {
		return ApplyResult{}, utils.ErrForbidden
	}

	// A repeated application reports "already applied" even once the
	// quota it consumed is used up.
	applied, err := s.HasAlreadyApplied(ctx, email, jobID)
	if err != nil {
		return ApplyResult{}, err
	}
	if applied {
		return ApplyResult{Rejection: RejectAlreadyApplied}, nil
	}

	allowed, err := s.quota.CanAccountApply(ctx, email)
	if err != nil {
		return ApplyResult{}, err
	}
	if !allowed {
		return ApplyResult{Rejection: RejectQuotaExceeded}, nil
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("find job: %w", utils.ErrDatabaseError)
	}
	if job == nil {
		return ApplyResult{}, utils.ErrJobNotFound
	}

	snap, rejection, err := s.BuildSnapshot(ctx, email)
	if err != nil {
		return ApplyResult{}, err
	}
	if rejection != "" {
		return ApplyResult{Rejection: rejection}, nil
	}
	snap.JobID = job.ID

	rec := &db_models.ApplicationRecord{
		CandidateEmail: email,
		JobID:          job.ID,
		CompanyEmail:   job.CompanyEmail,
		CompanyName:    job.CompanyName,
		JobTitle:       job.Title,
		CoverLetter:    coverLetter,
		AppliedAt:      snap.AppliedAt,
		DndStats:       db_models.StatusApplicant,
	}

	// The insert guards (job, email) and (email, job) itself, so a request
	// that lost a race with a concurrent apply lands here.
	if err := s.pipelineRepo.CreateApplication(ctx, snap, rec); err != nil {
		if errors.Is(err, repositories.ErrDuplicateApplication) {
			return ApplyResult{Rejection: RejectAlreadyApplied}, nil
		}
		s.logger.Error("create application",
			zap.String("email", email),
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
		return ApplyResult{}, fmt.Errorf("create application: %w", utils.ErrDatabaseError)
	}

	publish(ctx, s.publisher, s.logger, events.Event{
		Type:  events.ApplicationCreated,
		JobID: job.ID.String(),
		Email: email,
		Attributes: map[string]string{
			"recordId":     rec.ID.String(),
			"companyEmail": job.CompanyEmail,
		},
	})

	return ApplyResult{InsertedID: rec.ID}, nil
}

func (s *ApplicationService) ListAppliedJobs(ctx context.Context, email string) ([]db_models.ApplicationRecord, error) {
	records, err := s.pipelineRepo.ListApplicationsByCandidate(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", utils.ErrDatabaseError)
	}
	return records, nil
}
