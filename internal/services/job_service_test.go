package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

func TestPostJobRespectsQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "acme@x.com", db_models.RoleCompany, 2, 0)

	for i := 0; i < 2; i++ {
		id, rejection, err := f.jobSvc.PostJob(ctx, request_models.PostJobRequest{Email: "acme@x.com", Title: "Job"})
		if err != nil || rejection != "" || id == uuid.Nil {
			t.Fatalf("post %d: %s, %q, %v", i+1, id, rejection, err)
		}
	}
	_, rejection, err := f.jobSvc.PostJob(ctx, request_models.PostJobRequest{Email: "acme@x.com", Title: "Job"})
	if err != nil || rejection != RejectQuotaExceeded {
		t.Fatalf("third post: %q, %v", rejection, err)
	}
	if n := f.countRows(t, &db_models.JobPosting{}); n != 2 {
		t.Fatalf("postings = %d, want 2", n)
	}
}

func TestPostJobUnknownCompany(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.jobSvc.PostJob(context.Background(), request_models.PostJobRequest{Email: "ghost@x.com", Title: "Job"})
	if !errors.Is(err, utils.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestPostJobFillsCompanyName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "acme@x.com", db_models.RoleCompany, 1, 0)
	if err := f.profiles.UpsertCompany(ctx, &db_models.CompanyProfile{Email: "acme@x.com", Name: "Acme Ltd"}); err != nil {
		t.Fatalf("seed company: %v", err)
	}

	id, _, err := f.jobSvc.PostJob(ctx, request_models.PostJobRequest{Email: "Acme@x.com", Title: " Go Developer ", Skills: []string{"go", "sql"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	job, err := f.jobSvc.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if job.CompanyName != "Acme Ltd" || job.CompanyEmail != "acme@x.com" || job.Title != "Go Developer" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if len(job.Skills) != 2 || len(job.Applicants) != 0 {
		t.Fatalf("unexpected skills/applicants: %+v", job)
	}
}

func TestCompanyJobsIncludeApplicants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.candidate(t, "a@x.com", "r1", 1)
	job := f.job(t, "acme@x.com", "Go Developer")
	f.job(t, "globex@x.com", "PM")
	applyOK(t, f, "a@x.com", job.ID)

	jobs, err := f.jobSvc.ListCompanyJobs(ctx, "acme@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || len(jobs[0].Applicants) != 1 || jobs[0].Applicants[0].Email != "a@x.com" {
		t.Fatalf("unexpected company jobs: %+v", jobs)
	}
}

func TestSearchAndFilterJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, j := range []db_models.JobPosting{
		{CompanyEmail: "acme@x.com", Title: "Senior Go Developer", Category: "engineering", JobType: "remote"},
		{CompanyEmail: "acme@x.com", Title: "golang intern", Category: "engineering", JobType: "onsite"},
		{CompanyEmail: "acme@x.com", Title: "Designer 100%", Category: "design", JobType: "remote"},
	} {
		j := j
		if err := f.jobs.Create(ctx, &j); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	found, err := f.jobSvc.SearchJobs(ctx, "GO")
	if err != nil || len(found) != 2 {
		t.Fatalf("search GO = %d, %v", len(found), err)
	}
	found, err = f.jobSvc.SearchJobs(ctx, "100%")
	if err != nil || len(found) != 1 {
		t.Fatalf("search 100%% = %d, %v", len(found), err)
	}
	if _, err := f.jobSvc.SearchJobs(ctx, "  "); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("empty search err = %v", err)
	}

	filtered, err := f.jobSvc.FilterJobs(ctx, repositories.JobFilter{Category: "engineering", JobType: "remote"})
	if err != nil || len(filtered) != 1 || filtered[0].Title != "Senior Go Developer" {
		t.Fatalf("filter = %+v, %v", filtered, err)
	}

	page, err := f.jobSvc.ListJobs(ctx, 0, 2)
	if err != nil || len(page) != 2 {
		t.Fatalf("page = %d, %v", len(page), err)
	}
}

func TestPostJobDefaultsPostedDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "acme@x.com", db_models.RoleCompany, 2, 0)
	f.jobSvc.(*JobService).now = func() time.Time { return time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC) }

	undated, _, err := f.jobSvc.PostJob(ctx, request_models.PostJobRequest{Email: "acme@x.com", Title: "Undated"})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, _, err := f.jobSvc.PostJob(ctx, request_models.PostJobRequest{Email: "acme@x.com", Title: "Dated", Date: "2026-01-15"}); err != nil {
		t.Fatalf("post dated: %v", err)
	}

	jobs, err := f.jobSvc.FilterJobs(ctx, repositories.JobFilter{Date: "2026-03-09"})
	if err != nil || len(jobs) != 1 || jobs[0].ID != undated {
		t.Fatalf("jobs on default date = %+v, %v", jobs, err)
	}
	jobs, err = f.jobSvc.FilterJobs(ctx, repositories.JobFilter{Date: "2026-01-15"})
	if err != nil || len(jobs) != 1 || jobs[0].Title != "Dated" {
		t.Fatalf("jobs on explicit date = %+v, %v", jobs, err)
	}
}
