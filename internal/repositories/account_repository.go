package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"lumijob/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	UpdateRole(ctx context.Context, email string, role db_models.Role) (int64, error)
	UpdatePhoto(ctx context.Context, email, photoURL string) error
	UpdateSubscription(ctx context.Context, email string, update SubscriptionUpdate) error
}

// SubscriptionUpdate carries the fields a plan sets on an account. Nil
// quotas are left untouched.
type SubscriptionUpdate struct {
	Package  string
	Status   string
	CanPost  *int
	CanApply *int
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) UpdateRole(ctx context.Context, email string, role db_models.Role) (int64, error) {
	res := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("email = ?", email).
		Update("role", role)
	return res.RowsAffected, res.Error
}

func (a *accountRepository) UpdatePhoto(ctx context.Context, email, photoURL string) error {
	return a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("email = ?", email).
		Update("photo", photoURL).Error
}

func (a *accountRepository) UpdateSubscription(ctx context.Context, email string, update SubscriptionUpdate) error {
	fields := map[string]interface{}{
		"package": update.Package,
		"status":  update.Status,
	}
	if update.CanPost != nil {
		fields["can_post"] = *update.CanPost
	}
	if update.CanApply != nil {
		fields["can_apply"] = *update.CanApply
	}
	return a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("email = ?", email).
		Updates(fields).Error
}
