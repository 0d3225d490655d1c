package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lumijob/internal/models/db_models"
)

type BookmarkRepository interface {
	Create(ctx context.Context, b *db_models.Bookmark) error
	ListByEmail(ctx context.Context, email string) ([]db_models.Bookmark, error)
	Delete(ctx context.Context, id uuid.UUID, email string) (int64, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, b *db_models.Bookmark) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookmarkRepository) ListByEmail(ctx context.Context, email string) ([]db_models.Bookmark, error) {
	var out []db_models.Bookmark
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// Delete removes the bookmark id. A non-empty email restricts it to that owner.
func (r *bookmarkRepository) Delete(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if email != "" {
		q = q.Where("email = ?", email)
	}
	res := q.Delete(&db_models.Bookmark{})
	return res.RowsAffected, res.Error
}
