package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

type BookmarkServiceInterface interface {
	AddBookmark(ctx context.Context, req request_models.BookmarkRequest) (*db_models.Bookmark, error)
	ListBookmarks(ctx context.Context, email string) ([]db_models.Bookmark, error)
	// RemoveBookmark deletes id when it belongs to owner; an empty owner
	// matches any bookmark.
	RemoveBookmark(ctx context.Context, id, owner string) error
}

type BookmarkService struct {
	bookmarkRepo repositories.BookmarkRepository
}

func NewBookmarkService(bookmarkRepo repositories.BookmarkRepository) BookmarkServiceInterface {
	return &BookmarkService{bookmarkRepo: bookmarkRepo}
}

func (b *BookmarkService) AddBookmark(ctx context.Context, req request_models.BookmarkRequest) (*db_models.Bookmark, error) {
	bm := &db_models.Bookmark{
		Email:       normalizeEmail(req.Email),
		JobID:       req.JobID,
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
	}
	if err := b.bookmarkRepo.Create(ctx, bm); err != nil {
		return nil, fmt.Errorf("create bookmark: %w", utils.ErrDatabaseError)
	}
	return bm, nil
}

func (b *BookmarkService) ListBookmarks(ctx context.Context, email string) ([]db_models.Bookmark, error) {
	out, err := b.bookmarkRepo.ListByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", utils.ErrDatabaseError)
	}
	return out, nil
}

func (b *BookmarkService) RemoveBookmark(ctx context.Context, id, owner string) error {
	bid, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrInvalidInput
	}
	n, err := b.bookmarkRepo.Delete(ctx, bid, normalizeEmail(owner))
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", utils.ErrDatabaseError)
	}
	if n == 0 {
		return utils.ErrBookmarkNotFound
	}
	return nil
}
