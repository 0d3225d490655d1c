package services

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"lumijob/internal/models/db_models"
)

func TestReconcileRepairsBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewReconcileService(f.jobs, f.profiles, f.pipeline, zap.NewNop())

	a := f.candidate(t, "a@x.com", "r1", 5)
	f.candidate(t, "b@x.com", "r2", 5)
	job := f.job(t, "acme@x.com", "Go Developer")

	// consistent application
	applyOK(t, f, "b@x.com", job.ID)

	// applicant row without ledger record
	if _, err := f.pipeline.InsertSnapshotIfAbsent(ctx, &db_models.ApplicantSnapshot{
		JobID:             job.ID,
		Email:             "a@x.com",
		ApplicantID:       a.ID,
		AppliedAt:         42,
		DndStats:          db_models.StatusInterview,
		ScheduleInterview: db_models.InterviewSchedule{Date: "2026-11-02", Time: "09:00"},
	}); err != nil {
		t.Fatalf("seed orphan snapshot: %v", err)
	}

	// ledger record without applicant row, profile present
	other := f.job(t, "acme@x.com", "SRE")
	if _, err := f.pipeline.InsertRecordIfAbsent(ctx, &db_models.ApplicationRecord{
		CandidateEmail: "b@x.com", JobID: other.ID, AppliedAt: 7, DndStats: db_models.StatusPreSelected,
	}); err != nil {
		t.Fatalf("seed orphan record: %v", err)
	}

	// ledger record whose candidate has no profile
	if _, err := f.pipeline.InsertRecordIfAbsent(ctx, &db_models.ApplicationRecord{
		CandidateEmail: "gone@x.com", JobID: job.ID, DndStats: db_models.StatusApplicant,
	}); err != nil {
		t.Fatalf("seed dangling record: %v", err)
	}

	report, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.RecordsRecreated != 1 || report.SnapshotsRebuilt != 1 || report.RecordsRemoved != 1 {
		t.Fatalf("report = %+v", report)
	}

	rec, _ := f.pipeline.FindApplication(ctx, job.ID, "a@x.com")
	if rec == nil || rec.DndStats != db_models.StatusInterview || rec.ScheduleInterview.Date != "2026-11-02" || rec.JobTitle != "Go Developer" {
		t.Fatalf("recreated record = %+v", rec)
	}
	snap, _ := f.pipeline.FindApplicantByEmail(ctx, other.ID, "b@x.com")
	if snap == nil || snap.DndStats != db_models.StatusPreSelected || snap.AppliedAt != 7 || snap.Resume != "r2" {
		t.Fatalf("rebuilt snapshot = %+v", snap)
	}
	if gone, _ := f.pipeline.FindApplication(ctx, job.ID, "gone@x.com"); gone != nil {
		t.Fatalf("dangling record survived: %+v", gone)
	}

	again, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if again.RecordsRecreated != 0 || again.SnapshotsRebuilt != 0 || again.RecordsRemoved != 0 {
		t.Fatalf("second pass should find nothing: %+v", again)
	}
}
