package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/response_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/events"
	"lumijob/pkg/utils"
)

type PipelineServiceInterface interface {
	SetStatus(ctx context.Context, jobID, applicantID uuid.UUID, status string) (*db_models.ApplicantSnapshot, error)
	ScheduleInterview(ctx context.Context, jobID uuid.UUID, email string, schedule db_models.InterviewSchedule) (ScheduleResult, error)
	Withdraw(ctx context.Context, recordID, jobID, email string) (repositories.WithdrawResult, error)
	ListByStatus(ctx context.Context, jobID uuid.UUID, status db_models.PipelineStatus) ([]db_models.ApplicantSnapshot, error)
	ListSelectedAcrossCompany(ctx context.Context, companyEmail string) ([]response_models.SelectedApplicantResponse, error)
}

type PipelineService struct {
	jobRepo      repositories.JobRepository
	pipelineRepo repositories.PipelineRepository
	publisher    events.Publisher
	logger       *zap.Logger
}

func NewPipelineService(
	jobRepo repositories.JobRepository,
	pipelineRepo repositories.PipelineRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) PipelineServiceInterface {
	return &PipelineService{
		jobRepo:      jobRepo,
		pipelineRepo: pipelineRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

func (p *PipelineService) requireJob(ctx context.Context, jobID uuid.UUID) (*db_models.JobPosting, error) {
	job, err := p.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("find job: %w", utils.ErrDatabaseError)
	}
	if job == nil {
		return nil, utils.ErrJobNotFound
	}
	return job, nil
}

// SetStatus moves one applicant to status. Any stage may follow any other.
func (p *PipelineService) SetStatus(ctx context.Context, jobID, applicantID uuid.UUID, status string) (*db_models.ApplicantSnapshot, error) {
	next, ok := db_models.ParsePipelineStatus(status)
	if !ok {
		return nil, utils.ErrInvalidStatus
	}
	if _, err := p.requireJob(ctx, jobID); err != nil {
		return nil, err
	}

	res, err := p.pipelineRepo.SetStatus(ctx, jobID, applicantID, next)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", utils.ErrDatabaseError)
	}
	if res.Snapshot == nil {
		return nil, utils.ErrApplicantNotFound
	}
	if res.RecordRows == 0 {
		p.logger.Warn("status not mirrored: ledger record missing",
			zap.String("job_id", jobID.String()),
			zap.String("email", res.Snapshot.Email),
			zap.String("status", string(next)))
	}

	publish(ctx, p.publisher, p.logger, events.Event{
		Type:       events.ApplicantStatusChanged,
		JobID:      jobID.String(),
		Email:      res.Snapshot.Email,
		Attributes: map[string]string{"status": string(next)},
	})
	return res.Snapshot, nil
}

// ScheduleResult is the applicant row after scheduling and its mirrored
// ledger record. Record is nil when the ledger has no row for the pair.
type ScheduleResult struct {
	Applicant *db_models.ApplicantSnapshot
	Record    *db_models.ApplicationRecord
}

func (p *PipelineService) ScheduleInterview(ctx context.Context, jobID uuid.UUID, email string, schedule db_models.InterviewSchedule) (ScheduleResult, error) {
	email = normalizeEmail(email)
	if _, err := p.requireJob(ctx, jobID); err != nil {
		return ScheduleResult{}, err
	}

	res, err := p.pipelineRepo.ScheduleInterview(ctx, jobID, email, schedule)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("schedule interview: %w", utils.ErrDatabaseError)
	}
	if res.Snapshot == nil {
		return ScheduleResult{}, utils.ErrApplicantNotFound
	}
	if res.RecordRows == 0 {
		p.logger.Warn("schedule not mirrored: ledger record missing",
			zap.String("job_id", jobID.String()),
			zap.String("email", email))
	}

	publish(ctx, p.publisher, p.logger, events.Event{
		Type:  events.InterviewScheduled,
		JobID: jobID.String(),
		Email: email,
		Attributes: map[string]string{
			"date":        schedule.Date,
			"time":        schedule.Time,
			"meetingLink": schedule.MeetingLink,
		},
	})
	return ScheduleResult{Applicant: res.Snapshot, Record: res.Record}, nil
}

// Withdraw removes whatever is left of an application. A record id that
// does not parse falls back to the (job, email) pair, and nothing found is
// not an error.
func (p *PipelineService) Withdraw(ctx context.Context, recordID, jobID, email string) (repositories.WithdrawResult, error) {
	email = normalizeEmail(email)
	rid, _ := uuid.Parse(recordID)
	jid, _ := uuid.Parse(jobID)

	res, err := p.pipelineRepo.Withdraw(ctx, rid, jid, email)
	if err != nil {
		return res, fmt.Errorf("withdraw: %w", utils.ErrDatabaseError)
	}

	if res.RecordsDeleted != res.SnapshotsDeleted {
		p.logger.Warn("withdraw removed only one side of the application",
			zap.String("record_id", recordID),
			zap.String("job_id", jobID),
			zap.String("email", email),
			zap.Int64("records_deleted", res.RecordsDeleted),
			zap.Int64("snapshots_deleted", res.SnapshotsDeleted))
	}
	if res.RecordsDeleted > 0 || res.SnapshotsDeleted > 0 {
		publish(ctx, p.publisher, p.logger, events.Event{
			Type:  events.ApplicationWithdrawn,
			JobID: jobID,
			Email: email,
			Attributes: map[string]string{
				"recordId": recordID,
			},
		})
	}
	return res, nil
}

func (p *PipelineService) ListByStatus(ctx context.Context, jobID uuid.UUID, status db_models.PipelineStatus) ([]db_models.ApplicantSnapshot, error) {
	if _, err := p.requireJob(ctx, jobID); err != nil {
		return nil, err
	}
	applicants, err := p.pipelineRepo.ListApplicants(ctx, jobID, status)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", utils.ErrDatabaseError)
	}
	return applicants, nil
}

// ListSelectedAcrossCompany returns one row per selected applicant id over
// all of the company's jobs. The first row seen supplies the fields; later
// rows only add their job id.
func (p *PipelineService) ListSelectedAcrossCompany(ctx context.Context, companyEmail string) ([]response_models.SelectedApplicantResponse, error) {
	rows, err := p.pipelineRepo.ListSelectedByCompany(ctx, normalizeEmail(companyEmail))
	if err != nil {
		return nil, fmt.Errorf("list selected applicants: %w", utils.ErrDatabaseError)
	}

	out := make([]response_models.SelectedApplicantResponse, 0, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		if i, ok := index[row.ApplicantID]; ok {
			out[i].JobIDs = append(out[i].JobIDs, row.JobID.String())
			continue
		}
		index[row.ApplicantID] = len(out)
		out = append(out, response_models.SelectedApplicantResponse{
			ApplicantResponse: response_models.NewApplicantResponse(row),
			JobIDs:            []string{row.JobID.String()},
		})
	}
	return out, nil
}
