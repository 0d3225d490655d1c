package services

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"lumijob/internal/models/db_models"
	"lumijob/internal/repositories"
	"lumijob/internal/testutil"
	"lumijob/pkg/events"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	accounts  repositories.AccountRepository
	profiles  repositories.ProfileRepository
	jobs      repositories.JobRepository
	pipeline  repositories.PipelineRepository
	plans     repositories.PlanRepository
	publisher *recordingPublisher

	quota        QuotaServiceInterface
	applications ApplicationServiceInterface
	pipelineSvc  PipelineServiceInterface
	jobSvc       JobServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		accounts:  repositories.NewAccountRepository(db),
		profiles:  repositories.NewProfileRepository(db),
		jobs:      repositories.NewJobRepository(db),
		pipeline:  repositories.NewPipelineRepository(db),
		plans:     repositories.NewPlanRepository(db),
		publisher: &recordingPublisher{},
	}
	logger := zap.NewNop()
	f.quota = NewQuotaService(f.accounts, f.jobs, f.pipeline)
	f.applications = NewApplicationService(f.accounts, f.profiles, f.jobs, f.pipeline, f.quota, f.publisher, logger)
	f.pipelineSvc = NewPipelineService(f.jobs, f.pipeline, f.publisher, logger)
	f.jobSvc = NewJobService(f.jobs, f.profiles, f.quota)
	return f
}

func (f *fixture) account(t *testing.T, email string, role db_models.Role, canPost, canApply int) *db_models.Account {
	t.Helper()
	a := &db_models.Account{Name: email, Email: email, Role: role, CanPost: canPost, CanApply: canApply}
	if err := f.accounts.Insert(context.Background(), a); err != nil {
		t.Fatalf("seed account %s: %v", email, err)
	}
	return a
}

func (f *fixture) candidate(t *testing.T, email, resume string, canApply int) *db_models.CandidateProfile {
	t.Helper()
	f.account(t, email, db_models.RoleCandidate, 0, canApply)
	p := &db_models.CandidateProfile{
		Email:     email,
		Name:      "Candidate " + email,
		City:      "Dhaka",
		Country:   "BD",
		Position:  "Backend Engineer",
		Resume:    resume,
		SalaryMin: 1000,
		SalaryMax: 2000,
	}
	if err := f.profiles.UpsertCandidate(context.Background(), p); err != nil {
		t.Fatalf("seed profile %s: %v", email, err)
	}
	stored, err := f.profiles.FindCandidateByEmail(context.Background(), email)
	if err != nil || stored == nil {
		t.Fatalf("reload profile %s: %v", email, err)
	}
	return stored
}

func (f *fixture) job(t *testing.T, companyEmail, title string) *db_models.JobPosting {
	t.Helper()
	j := &db_models.JobPosting{CompanyEmail: companyEmail, CompanyName: "Acme", Title: title}
	if err := f.jobs.Create(context.Background(), j); err != nil {
		t.Fatalf("seed job %s: %v", title, err)
	}
	return j
}

func (f *fixture) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
