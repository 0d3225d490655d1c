package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "lumijob/internal/models/db_models"
)

type DashboardRepository interface {
	CountAccountsByRole(ctx context.Context) ([]LabelCount, error)
	CountNewAccounts(ctx context.Context, since int64) (int64, error)

	CountJobs(ctx context.Context) (int64, error)
	CountNewJobs(ctx context.Context, since int64) (int64, error)
	TopCategories(ctx context.Context, limit int) ([]LabelCount, error)

	CountApplicantsByStatus(ctx context.Context) ([]LabelCount, error)
	CountNewApplications(ctx context.Context, since int64) (int64, error)

	PlanMix(ctx context.Context) ([]LabelCount, error)
	RevenueSince(ctx context.Context, since int64) ([]CurrencySum, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type LabelCount struct {
	Label string `gorm:"column:label"`
	Count int64  `gorm:"column:count"`
}

type CurrencySum struct {
	Currency string `gorm:"column:currency"`
	Sum      int64  `gorm:"column:sum"`
}

func (r *dashboardRepository) groupCount(ctx context.Context, model interface{}, column string, scope func(*gorm.DB) *gorm.DB) ([]LabelCount, error) {
	var rows []LabelCount
	q := r.db.WithContext(ctx).
		Model(model).
		Select(column + " AS label, COUNT(*) AS count")
	if scope != nil {
		q = scope(q)
	}
	err := q.Group(column).Order("count DESC, label ASC").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) countSince(ctx context.Context, model interface{}, column string, since int64) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(model)
	if since > 0 {
		q = q.Where(column+" >= ?", since)
	}
	err := q.Count(&n).Error
	return n, err
}

// ---------- Accounts ----------
func (r *dashboardRepository) CountAccountsByRole(ctx context.Context) ([]LabelCount, error) {
	return r.groupCount(ctx, &dbm.Account{}, "role", nil)
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, since int64) (int64, error) {
	return r.countSince(ctx, &dbm.Account{}, "created_at", since)
}

// ---------- Jobs ----------
func (r *dashboardRepository) CountJobs(ctx context.Context) (int64, error) {
	return r.countSince(ctx, &dbm.JobPosting{}, "created_at", 0)
}

func (r *dashboardRepository) CountNewJobs(ctx context.Context, since int64) (int64, error) {
	return r.countSince(ctx, &dbm.JobPosting{}, "created_at", since)
}

func (r *dashboardRepository) TopCategories(ctx context.Context, limit int) ([]LabelCount, error) {
	return r.groupCount(ctx, &dbm.JobPosting{}, "category", func(q *gorm.DB) *gorm.DB {
		return q.Where("category <> ''").Limit(limit)
	})
}

// ---------- Pipeline ----------

// CountApplicantsByStatus counts the applicant rows on job boards, which is
// what companies see.
func (r *dashboardRepository) CountApplicantsByStatus(ctx context.Context) ([]LabelCount, error) {
	return r.groupCount(ctx, &dbm.ApplicantSnapshot{}, "dnd_stats", nil)
}

func (r *dashboardRepository) CountNewApplications(ctx context.Context, since int64) (int64, error) {
	return r.countSince(ctx, &dbm.ApplicantSnapshot{}, "applied_at", since)
}

// ---------- Subscriptions ----------
func (r *dashboardRepository) PlanMix(ctx context.Context) ([]LabelCount, error) {
	return r.groupCount(ctx, &dbm.Subscription{}, "plan_code", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", dbm.SubStatusActive)
	})
}

func (r *dashboardRepository) RevenueSince(ctx context.Context, since int64) ([]CurrencySum, error) {
	var rows []CurrencySum
	q := r.db.WithContext(ctx).
		Model(&dbm.Subscription{}).
		Select("currency, COALESCE(SUM(amount_minor), 0) AS sum")
	if since > 0 {
		q = q.Where("starts_at >= ?", since)
	}
	err := q.Group("currency").Order("currency ASC").Scan(&rows).Error
	return rows, err
}
