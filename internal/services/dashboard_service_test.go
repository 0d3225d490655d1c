package services

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/repositories"
)

func TestBuildDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	subs := newSubscriptionService(t, f)

	f.account(t, "hr@acme.com", db_models.RoleCompany, 5, 0)
	f.account(t, "pending@example.com", "", 0, 0)
	f.candidate(t, "a@example.com", "a.pdf", 0)
	f.candidate(t, "b@example.com", "b.pdf", 0)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := subs.ApplyPlan(ctx, request_models.ApplySubscriptionRequest{
			Email: email, PlanCode: "candidate_standard", AmountMinor: 999, Currency: "usd",
		}); err != nil {
			t.Fatalf("apply plan %s: %v", email, err)
		}
	}

	job := &db_models.JobPosting{CompanyEmail: "hr@acme.com", Title: "Go Dev", Category: "engineering", Skills: datatypes.NewJSONSlice([]string{"go"})}
	if err := f.jobs.Create(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	f.job(t, "hr@acme.com", "Untagged")

	applyOK(t, f, "a@example.com", job.ID)
	applyOK(t, f, "b@example.com", job.ID)
	snaps, err := f.pipelineSvc.ListByStatus(ctx, job.ID, "")
	if err != nil || len(snaps) != 2 {
		t.Fatalf("list applicants: %v %d", err, len(snaps))
	}
	if _, err := f.pipelineSvc.SetStatus(ctx, job.ID, snaps[0].ApplicantID, string(db_models.StatusSelected)); err != nil {
		t.Fatalf("select: %v", err)
	}

	report, err := NewDashboardService(repositories.NewDashboardRepository(f.db)).BuildDashboard(ctx, 0)
	if err != nil {
		t.Fatalf("build dashboard: %v", err)
	}

	if report.WindowDays != 30 {
		t.Fatalf("window = %d, want default 30", report.WindowDays)
	}
	if report.Accounts.Total != 4 || report.Accounts.ByRole["candidate"] != 2 || report.Accounts.ByRole["unassigned"] != 1 {
		t.Fatalf("accounts = %+v", report.Accounts)
	}
	if report.Accounts.New != 4 || report.Jobs.Total != 2 || report.Jobs.New != 2 {
		t.Fatalf("activity counts = %+v %+v", report.Accounts, report.Jobs)
	}
	if len(report.Jobs.TopCategories) != 1 || report.Jobs.TopCategories[0].Label != "engineering" {
		t.Fatalf("categories = %+v", report.Jobs.TopCategories)
	}

	p := report.Pipeline
	if p.Applicants != 2 || p.NewApplications != 2 || p.ByStatus["selected"] != 1 || p.ByStatus["applicant"] != 1 {
		t.Fatalf("pipeline = %+v", p)
	}
	if _, ok := p.ByStatus["interview"]; !ok {
		t.Fatalf("empty statuses should be reported: %+v", p.ByStatus)
	}
	if p.SelectionRatePct != 50 {
		t.Fatalf("selection rate = %v", p.SelectionRatePct)
	}

	s := report.Subscriptions
	if s.Active != 2 || len(s.PlanMix) != 1 || s.PlanMix[0].Percent != 100 {
		t.Fatalf("subscriptions = %+v", s)
	}
	if len(s.Revenue) != 1 || s.Revenue[0].Currency != "USD" || s.Revenue[0].AmountMinor != 1998 {
		t.Fatalf("revenue = %+v", s.Revenue)
	}
}
