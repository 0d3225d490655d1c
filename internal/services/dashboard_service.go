package services

import (
	"context"
	"fmt"
	"math"
	"time"

	dbm "lumijob/internal/models/db_models"
	resp "lumijob/internal/models/response_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

const (
	defaultDashboardDays = 30
	maxDashboardDays     = 365
	topCategoryLimit     = 5
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, days int) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo, now: time.Now}
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)*10000/float64(whole)) / 100
}

// BuildDashboard reports totals plus activity over the last days days.
// Days outside 1..365 falls back to 30.
func (s *dashboardService) BuildDashboard(ctx context.Context, days int) (*resp.DashboardReport, error) {
	if days < 1 || days > maxDashboardDays {
		days = defaultDashboardDays
	}
	since := s.now().AddDate(0, 0, -days).UnixMilli()
	report := &resp.DashboardReport{WindowDays: days, Since: since}
	wrap := func(what string, err error) error {
		return fmt.Errorf("dashboard %s: %w: %w", what, utils.ErrDatabaseError, err)
	}

	// ---------- Accounts ----------
	roles, err := s.repo.CountAccountsByRole(ctx)
	if err != nil {
		return nil, wrap("accounts", err)
	}
	report.Accounts.ByRole = make(map[string]int64, len(roles))
	for _, r := range roles {
		label := r.Label
		if label == "" {
			label = "unassigned"
		}
		report.Accounts.ByRole[label] += r.Count
		report.Accounts.Total += r.Count
	}
	if report.Accounts.New, err = s.repo.CountNewAccounts(ctx, since); err != nil {
		return nil, wrap("new accounts", err)
	}

	// ---------- Jobs ----------
	if report.Jobs.Total, err = s.repo.CountJobs(ctx); err != nil {
		return nil, wrap("jobs", err)
	}
	if report.Jobs.New, err = s.repo.CountNewJobs(ctx, since); err != nil {
		return nil, wrap("new jobs", err)
	}
	categories, err := s.repo.TopCategories(ctx, topCategoryLimit)
	if err != nil {
		return nil, wrap("categories", err)
	}
	report.Jobs.TopCategories = make([]resp.LabelCount, 0, len(categories))
	for _, c := range categories {
		report.Jobs.TopCategories = append(report.Jobs.TopCategories, resp.LabelCount{Label: c.Label, Count: c.Count})
	}

	// ---------- Pipeline ----------
	statuses, err := s.repo.CountApplicantsByStatus(ctx)
	if err != nil {
		return nil, wrap("pipeline", err)
	}
	report.Pipeline.ByStatus = make(map[string]int64, len(dbm.PipelineStatuses))
	for _, st := range dbm.PipelineStatuses {
		report.Pipeline.ByStatus[string(st)] = 0
	}
	for _, r := range statuses {
		report.Pipeline.ByStatus[r.Label] += r.Count
		report.Pipeline.Applicants += r.Count
	}
	report.Pipeline.SelectionRatePct = percent(report.Pipeline.ByStatus[string(dbm.StatusSelected)], report.Pipeline.Applicants)
	if report.Pipeline.NewApplications, err = s.repo.CountNewApplications(ctx, since); err != nil {
		return nil, wrap("new applications", err)
	}

	// ---------- Subscriptions ----------
	mix, err := s.repo.PlanMix(ctx)
	if err != nil {
		return nil, wrap("plan mix", err)
	}
	for _, m := range mix {
		report.Subscriptions.Active += m.Count
	}
	report.Subscriptions.PlanMix = make([]resp.PlanMixItem, 0, len(mix))
	for _, m := range mix {
		report.Subscriptions.PlanMix = append(report.Subscriptions.PlanMix, resp.PlanMixItem{
			PlanCode: m.Label,
			Count:    m.Count,
			Percent:  percent(m.Count, report.Subscriptions.Active),
		})
	}
	revenue, err := s.repo.RevenueSince(ctx, since)
	if err != nil {
		return nil, wrap("revenue", err)
	}
	report.Subscriptions.Revenue = make([]resp.RevenueItem, 0, len(revenue))
	for _, r := range revenue {
		report.Subscriptions.Revenue = append(report.Subscriptions.Revenue, resp.RevenueItem{Currency: r.Currency, AmountMinor: r.Sum})
	}

	return report, nil
}
