package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"lumijob/internal/models/db_models"
)

type PlanRepository interface {
	ListActive(ctx context.Context) ([]db_models.Plan, error)
	FindActiveByCode(ctx context.Context, code string) (*db_models.Plan, error)
	RecordSubscription(ctx context.Context, sub *db_models.Subscription) error
	EnsurePlans(ctx context.Context, plans []db_models.Plan) (int64, error)
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) ListActive(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price_minor ASC").
		Find(&plans).Error
	return plans, err
}

func (r *planRepository) FindActiveByCode(ctx context.Context, code string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// RecordSubscription marks earlier active subscriptions of the account as
// replaced and stores the new one.
func (r *planRepository) RecordSubscription(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Subscription{}).
			Where("account_email = ? AND status = ?", sub.AccountEmail, db_models.SubStatusActive).
			Update("status", db_models.SubStatusReplaced).Error; err != nil {
			return err
		}
		return tx.Create(sub).Error
	})
}

// EnsurePlans inserts plans whose code is not stored yet. Existing rows are
// never overwritten.
func (r *planRepository) EnsurePlans(ctx context.Context, plans []db_models.Plan) (int64, error) {
	if len(plans) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&plans)
	return res.RowsAffected, res.Error
}
