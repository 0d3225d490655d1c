package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"lumijob/internal/models/db_models"
)

// ErrDuplicateApplication is returned when either the (job, email) snapshot
// or the (email, job) ledger record already exists.
var ErrDuplicateApplication = errors.New("duplicate application")

// PipelineRepository owns the two sides of an application: the applicant
// rows attached to a job and the per-candidate ledger. Every mutation
// addresses rows by key; nothing reads and rewrites a whole applicant list.
type PipelineRepository interface {
	CreateApplication(ctx context.Context, snap *db_models.ApplicantSnapshot, rec *db_models.ApplicationRecord) error

	HasApplicationRecord(ctx context.Context, candidateEmail string, jobID uuid.UUID) (bool, error)
	HasApplicantSnapshot(ctx context.Context, jobID uuid.UUID, email string) (bool, error)
	CountApplicationsByCandidate(ctx context.Context, candidateEmail string) (int64, error)
	ListApplicationsByCandidate(ctx context.Context, candidateEmail string) ([]db_models.ApplicationRecord, error)
	FindApplication(ctx context.Context, jobID uuid.UUID, candidateEmail string) (*db_models.ApplicationRecord, error)

	ListApplicants(ctx context.Context, jobID uuid.UUID, status db_models.PipelineStatus) ([]db_models.ApplicantSnapshot, error)
	FindApplicantByID(ctx context.Context, jobID, applicantID uuid.UUID) (*db_models.ApplicantSnapshot, error)
	FindApplicantByEmail(ctx context.Context, jobID uuid.UUID, email string) (*db_models.ApplicantSnapshot, error)
	ListSelectedByCompany(ctx context.Context, companyEmail string) ([]db_models.ApplicantSnapshot, error)

	SetStatus(ctx context.Context, jobID, applicantID uuid.UUID, status db_models.PipelineStatus) (MirrorResult, error)
	ScheduleInterview(ctx context.Context, jobID uuid.UUID, email string, schedule db_models.InterviewSchedule) (MirrorResult, error)
	Withdraw(ctx context.Context, recordID uuid.UUID, jobID uuid.UUID, email string) (WithdrawResult, error)

	ListSnapshotsWithoutRecord(ctx context.Context) ([]db_models.ApplicantSnapshot, error)
	ListRecordsWithoutSnapshot(ctx context.Context) ([]db_models.ApplicationRecord, error)
	InsertRecordIfAbsent(ctx context.Context, rec *db_models.ApplicationRecord) (bool, error)
	InsertSnapshotIfAbsent(ctx context.Context, snap *db_models.ApplicantSnapshot) (bool, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

// MirrorResult reports how many rows each side of a mirrored update touched.
type MirrorResult struct {
	Snapshot     *db_models.ApplicantSnapshot
	Record       *db_models.ApplicationRecord // set by ScheduleInterview when mirrored
	SnapshotRows int64
	RecordRows   int64
}

type WithdrawResult struct {
	RecordsDeleted   int64
	SnapshotsDeleted int64
}

type pipelineRepository struct {
	db *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) PipelineRepository {
	return &pipelineRepository{db: db}
}

// CreateApplication inserts the snapshot and the ledger record in one
// transaction. Both inserts are "insert if absent" on their unique keys, so
// concurrent applications for the same (job, email) cannot both succeed.
func (r *pipelineRepository) CreateApplication(ctx context.Context, snap *db_models.ApplicantSnapshot, rec *db_models.ApplicationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(snap)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDuplicateApplication
		}

		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDuplicateApplication
		}
		return nil
	})
}

func (r *pipelineRepository) HasApplicationRecord(ctx context.Context, candidateEmail string, jobID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.ApplicationRecord{}).
		Where("candidate_email = ? AND job_id = ?", candidateEmail, jobID).
		Count(&n).Error
	return n > 0, err
}

func (r *pipelineRepository) HasApplicantSnapshot(ctx context.Context, jobID uuid.UUID, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.ApplicantSnapshot{}).
		Where("job_id = ? AND email = ?", jobID, email).
		Count(&n).Error
	return n > 0, err
}

func (r *pipelineRepository) CountApplicationsByCandidate(ctx context.Context, candidateEmail string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.ApplicationRecord{}).
		Where("candidate_email = ?", candidateEmail).
		Count(&n).Error
	return n, err
}

func (r *pipelineRepository) ListApplicationsByCandidate(ctx context.Context, candidateEmail string) ([]db_models.ApplicationRecord, error) {
	var out []db_models.ApplicationRecord
	err := r.db.WithContext(ctx).
		Where("candidate_email = ?", candidateEmail).
		Order("applied_at DESC").
		Find(&out).Error
	return out, err
}

func (r *pipelineRepository) FindApplication(ctx context.Context, jobID uuid.UUID, candidateEmail string) (*db_models.ApplicationRecord, error) {
	var rec db_models.ApplicationRecord
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND candidate_email = ?", jobID, candidateEmail).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListApplicants returns a job's applicants in application order. An empty
// status returns every stage.
func (r *pipelineRepository) ListApplicants(ctx context.Context, jobID uuid.UUID, status db_models.PipelineStatus) ([]db_models.ApplicantSnapshot, error) {
	q := r.db.WithContext(ctx).Where("job_id = ?", jobID)
	if status != "" {
		q = q.Where("dnd_stats = ?", status)
	}
	var out []db_models.ApplicantSnapshot
	err := q.Order("applied_at ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *pipelineRepository) FindApplicantByID(ctx context.Context, jobID, applicantID uuid.UUID) (*db_models.ApplicantSnapshot, error) {
	return r.findApplicant(r.db.WithContext(ctx), "job_id = ? AND applicant_id = ?", jobID, applicantID)
}

func (r *pipelineRepository) FindApplicantByEmail(ctx context.Context, jobID uuid.UUID, email string) (*db_models.ApplicantSnapshot, error) {
	return r.findApplicant(r.db.WithContext(ctx), "job_id = ? AND email = ?", jobID, email)
}

func (r *pipelineRepository) findApplicant(db *gorm.DB, query string, args ...interface{}) (*db_models.ApplicantSnapshot, error) {
	var snap db_models.ApplicantSnapshot
	if err := db.Where(query, args...).First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// ListSelectedByCompany flattens the selected applicants of every job the
// company owns, oldest job first, then application order.
func (r *pipelineRepository) ListSelectedByCompany(ctx context.Context, companyEmail string) ([]db_models.ApplicantSnapshot, error) {
	var out []db_models.ApplicantSnapshot
	err := r.db.WithContext(ctx).
		Model(&db_models.ApplicantSnapshot{}).
		Select("job_applicants.*").
		Joins("JOIN job_postings ON job_postings.id = job_applicants.job_id AND job_postings.deleted_at IS NULL").
		Where("job_postings.company_email = ? AND job_applicants.dnd_stats = ?", companyEmail, db_models.StatusSelected).
		Order("job_postings.created_at ASC, job_applicants.applied_at ASC, job_applicants.id ASC").
		Find(&out).Error
	return out, err
}

// SetStatus updates the stage of one applicant row and mirrors it onto the
// ledger record of the same (job, candidate). A nil Snapshot means no
// applicant matched.
func (r *pipelineRepository) SetStatus(ctx context.Context, jobID, applicantID uuid.UUID, status db_models.PipelineStatus) (MirrorResult, error) {
	var out MirrorResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.ApplicantSnapshot{}).
			Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
			Update("dnd_stats", status)
		if res.Error != nil {
			return res.Error
		}
		out.SnapshotRows = res.RowsAffected
		if out.SnapshotRows == 0 {
			return nil
		}

		snap, err := r.findApplicant(tx, "job_id = ? AND applicant_id = ?", jobID, applicantID)
		if err != nil {
			return err
		}
		out.Snapshot = snap

		res = tx.Model(&db_models.ApplicationRecord{}).
			Where("job_id = ? AND candidate_email = ?", jobID, snap.Email).
			Update("dnd_stats", status)
		if res.Error != nil {
			return res.Error
		}
		out.RecordRows = res.RowsAffected
		return nil
	})
	return out, err
}

func (r *pipelineRepository) ScheduleInterview(ctx context.Context, jobID uuid.UUID, email string, schedule db_models.InterviewSchedule) (MirrorResult, error) {
	fields := map[string]interface{}{
		"interview_date":         schedule.Date,
		"interview_time":         schedule.Time,
		"interview_meeting_link": schedule.MeetingLink,
	}

	var out MirrorResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.ApplicantSnapshot{}).
			Where("job_id = ? AND email = ?", jobID, email).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		out.SnapshotRows = res.RowsAffected
		if out.SnapshotRows == 0 {
			return nil
		}

		snap, err := r.findApplicant(tx, "job_id = ? AND email = ?", jobID, email)
		if err != nil {
			return err
		}
		out.Snapshot = snap

		res = tx.Model(&db_models.ApplicationRecord{}).
			Where("job_id = ? AND candidate_email = ?", jobID, email).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		out.RecordRows = res.RowsAffected
		if out.RecordRows == 0 {
			return nil
		}

		var rec db_models.ApplicationRecord
		if err := tx.Where("job_id = ? AND candidate_email = ?", jobID, email).First(&rec).Error; err != nil {
			return err
		}
		out.Record = &rec
		return nil
	})
	return out, err
}

// Withdraw removes the candidate's ledger record and applicant row together.
// The record is addressed by id when it matches, otherwise by (job, email). A
// missing job id is taken from the record.
func (r *pipelineRepository) Withdraw(ctx context.Context, recordID uuid.UUID, jobID uuid.UUID, email string) (WithdrawResult, error) {
	var out WithdrawResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if recordID != uuid.Nil {
			var rec db_models.ApplicationRecord
			res := tx.Where("id = ? AND candidate_email = ?", recordID, email).Limit(1).Find(&rec)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				if jobID == uuid.Nil {
					jobID = rec.JobID
				}
				del := tx.Where("id = ?", rec.ID).Delete(&db_models.ApplicationRecord{})
				if del.Error != nil {
					return del.Error
				}
				out.RecordsDeleted = del.RowsAffected
			}
		}
		if jobID == uuid.Nil {
			return nil
		}
		if out.RecordsDeleted == 0 {
			res := tx.Where("job_id = ? AND candidate_email = ?", jobID, email).
				Delete(&db_models.ApplicationRecord{})
			if res.Error != nil {
				return res.Error
			}
			out.RecordsDeleted = res.RowsAffected
		}
		res := tx.Where("job_id = ? AND email = ?", jobID, email).
			Delete(&db_models.ApplicantSnapshot{})
		if res.Error != nil {
			return res.Error
		}
		out.SnapshotsDeleted = res.RowsAffected
		return nil
	})
	return out, err
}

func (r *pipelineRepository) ListSnapshotsWithoutRecord(ctx context.Context) ([]db_models.ApplicantSnapshot, error) {
	var out []db_models.ApplicantSnapshot
	err := r.db.WithContext(ctx).
		Model(&db_models.ApplicantSnapshot{}).
		Select("job_applicants.*").
		Joins("LEFT JOIN applications ON applications.job_id = job_applicants.job_id AND applications.candidate_email = job_applicants.email").
		Where("applications.id IS NULL").
		Order("job_applicants.applied_at ASC").
		Find(&out).Error
	return out, err
}

func (r *pipelineRepository) ListRecordsWithoutSnapshot(ctx context.Context) ([]db_models.ApplicationRecord, error) {
	var out []db_models.ApplicationRecord
	err := r.db.WithContext(ctx).
		Model(&db_models.ApplicationRecord{}).
		Select("applications.*").
		Joins("LEFT JOIN job_applicants ON job_applicants.job_id = applications.job_id AND job_applicants.email = applications.candidate_email").
		Where("job_applicants.id IS NULL").
		Order("applications.applied_at ASC").
		Find(&out).Error
	return out, err
}

func (r *pipelineRepository) InsertRecordIfAbsent(ctx context.Context, rec *db_models.ApplicationRecord) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
	return res.RowsAffected > 0, res.Error
}

func (r *pipelineRepository) InsertSnapshotIfAbsent(ctx context.Context, snap *db_models.ApplicantSnapshot) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(snap)
	return res.RowsAffected > 0, res.Error
}

func (r *pipelineRepository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&db_models.ApplicationRecord{}).Error
}
