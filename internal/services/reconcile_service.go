package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"lumijob/internal/models/db_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

// ReconcileReport counts the repairs made by one pass.
type ReconcileReport struct {
	RecordsRecreated int64 `json:"recordsRecreated"`
	SnapshotsRebuilt int64 `json:"snapshotsRebuilt"`
	RecordsRemoved   int64 `json:"recordsRemoved"`
	DurationMillis   int64 `json:"durationMs"`
}

type ReconcileServiceInterface interface {
	Reconcile(ctx context.Context) (ReconcileReport, error)
	RunEvery(ctx context.Context, interval time.Duration)
}

// ReconcileService repairs applications that exist on only one side: an
// applicant row without a ledger record, or a ledger record without an
// applicant row.
type ReconcileService struct {
	jobRepo      repositories.JobRepository
	profileRepo  repositories.ProfileRepository
	pipelineRepo repositories.PipelineRepository
	logger       *zap.Logger
	running      atomic.Bool
}

func NewReconcileService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	pipelineRepo repositories.PipelineRepository,
	logger *zap.Logger,
) ReconcileServiceInterface {
	return &ReconcileService{
		jobRepo:      jobRepo,
		profileRepo:  profileRepo,
		pipelineRepo: pipelineRepo,
		logger:       logger,
	}
}

func (r *ReconcileService) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport
	if !r.running.CompareAndSwap(false, true) {
		return report, fmt.Errorf("reconcile already running: %w", utils.ErrConflict)
	}
	defer r.running.Store(false)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.recreateRecords(gctx)
		report.RecordsRecreated = n
		return err
	})
	g.Go(func() error {
		rebuilt, removed, err := r.rebuildSnapshots(gctx)
		report.SnapshotsRebuilt = rebuilt
		report.RecordsRemoved = removed
		return err
	})
	err := g.Wait()
	report.DurationMillis = time.Since(start).Milliseconds()

	if err != nil {
		r.logger.Error("reconcile failed", zap.Error(err))
		return report, fmt.Errorf("reconcile: %w", utils.ErrDatabaseError)
	}
	r.logger.Info("reconcile finished",
		zap.Int64("records_recreated", report.RecordsRecreated),
		zap.Int64("snapshots_rebuilt", report.SnapshotsRebuilt),
		zap.Int64("records_removed", report.RecordsRemoved),
		zap.Int64("duration_ms", report.DurationMillis))
	return report, nil
}

// recreateRecords writes a ledger record for every applicant row that has none.
func (r *ReconcileService) recreateRecords(ctx context.Context) (int64, error) {
	orphans, err := r.pipelineRepo.ListSnapshotsWithoutRecord(ctx)
	if err != nil {
		return 0, err
	}

	var created int64
	for _, snap := range orphans {
		job, err := r.jobRepo.FindByID(ctx, snap.JobID)
		if err != nil {
			return created, err
		}
		if job == nil {
			continue
		}
		ok, err := r.pipelineRepo.InsertRecordIfAbsent(ctx, &db_models.ApplicationRecord{
			CandidateEmail:    snap.Email,
			JobID:             snap.JobID,
			CompanyEmail:      job.CompanyEmail,
			CompanyName:       job.CompanyName,
			JobTitle:          job.Title,
			AppliedAt:         snap.AppliedAt,
			DndStats:          snap.DndStats,
			ScheduleInterview: snap.ScheduleInterview,
		})
		if err != nil {
			return created, err
		}
		if ok {
			created++
			r.logger.Info("ledger record recreated",
				zap.String("job_id", snap.JobID.String()),
				zap.String("email", snap.Email))
		}
	}
	return created, nil
}

// rebuildSnapshots restores the applicant row of every ledger record that
// lost it. Records whose job or candidate profile is gone are removed.
func (r *ReconcileService) rebuildSnapshots(ctx context.Context) (int64, int64, error) {
	orphans, err := r.pipelineRepo.ListRecordsWithoutSnapshot(ctx)
	if err != nil {
		return 0, 0, err
	}

	var rebuilt, removed int64
	for _, rec := range orphans {
		job, err := r.jobRepo.FindByID(ctx, rec.JobID)
		if err != nil {
			return rebuilt, removed, err
		}
		profile, err := r.profileRepo.FindCandidateByEmail(ctx, rec.CandidateEmail)
		if err != nil {
			return rebuilt, removed, err
		}

		if job == nil || profile == nil {
			if err := r.pipelineRepo.DeleteRecord(ctx, rec.ID); err != nil {
				return rebuilt, removed, err
			}
			removed++
			r.logger.Info("orphaned ledger record removed",
				zap.String("record_id", rec.ID.String()),
				zap.Bool("job_missing", job == nil),
				zap.Bool("profile_missing", profile == nil))
			continue
		}

		ok, err := r.pipelineRepo.InsertSnapshotIfAbsent(ctx, &db_models.ApplicantSnapshot{
			JobID:             rec.JobID,
			Email:             rec.CandidateEmail,
			ApplicantID:       profile.ID,
			Name:              profile.Name,
			Photo:             profile.Photo,
			City:              profile.City,
			Country:           profile.Country,
			Position:          profile.Position,
			Status:            profile.Status,
			SalaryMin:         profile.SalaryMin,
			SalaryMax:         profile.SalaryMax,
			AppliedAt:         rec.AppliedAt,
			DndStats:          rec.DndStats,
			Resume:            profile.Resume,
			ScheduleInterview: rec.ScheduleInterview,
		})
		if err != nil {
			return rebuilt, removed, err
		}
		if ok {
			rebuilt++
			r.logger.Info("applicant row rebuilt",
				zap.String("job_id", rec.JobID.String()),
				zap.String("email", rec.CandidateEmail))
		}
	}
	return rebuilt, removed, nil
}

// RunEvery reconciles on interval until ctx is done.
func (r *ReconcileService) RunEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Reconcile(ctx); err != nil {
				r.logger.Warn("scheduled reconcile", zap.Error(err))
			}
		}
	}
}
