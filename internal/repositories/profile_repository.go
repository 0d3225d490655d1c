package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"lumijob/internal/models/db_models"
)

type ProfileRepository interface {
	FindCandidateByEmail(ctx context.Context, email string) (*db_models.CandidateProfile, error)
	FindCompanyByEmail(ctx context.Context, email string) (*db_models.CompanyProfile, error)
	UpsertCandidate(ctx context.Context, profile *db_models.CandidateProfile) error
	UpsertCompany(ctx context.Context, profile *db_models.CompanyProfile) error
	UpdateCandidatePhoto(ctx context.Context, email, photoURL string) (int64, error)
	UpdateCompanyPhoto(ctx context.Context, email, photoURL string) error
	UpdateCandidateResume(ctx context.Context, email, resumeURL string) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindCandidateByEmail(ctx context.Context, email string) (*db_models.CandidateProfile, error) {
	var p db_models.CandidateProfile
	if err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindCompanyByEmail(ctx context.Context, email string) (*db_models.CompanyProfile, error) {
	var p db_models.CompanyProfile
	if err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// UpsertCandidate creates the profile or sets the non-zero fields of an
// existing one.
func (r *profileRepository) UpsertCandidate(ctx context.Context, profile *db_models.CandidateProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.CandidateProfile
		err := tx.First(&existing, "email = ?", profile.Email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(profile).Error
		}
		if err != nil {
			return err
		}
		profile.ID = existing.ID
		return tx.Model(&existing).Updates(profile).Error
	})
}

func (r *profileRepository) UpsertCompany(ctx context.Context, profile *db_models.CompanyProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.CompanyProfile
		err := tx.First(&existing, "email = ?", profile.Email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(profile).Error
		}
		if err != nil {
			return err
		}
		profile.ID = existing.ID
		return tx.Model(&existing).Updates(profile).Error
	})
}

// UpdateCandidatePhoto and UpdateCandidateResume only touch an existing
// profile. A candidate profile is created by the profile form alone.
func (r *profileRepository) UpdateCandidatePhoto(ctx context.Context, email, photoURL string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&db_models.CandidateProfile{}).
		Where("email = ?", email).
		Update("photo", photoURL)
	return res.RowsAffected, res.Error
}

func (r *profileRepository) UpdateCompanyPhoto(ctx context.Context, email, photoURL string) error {
	return r.UpsertCompany(ctx, &db_models.CompanyProfile{Email: email, Photo: photoURL})
}

func (r *profileRepository) UpdateCandidateResume(ctx context.Context, email, resumeURL string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&db_models.CandidateProfile{}).
		Where("email = ?", email).
		Update("resume", resumeURL)
	return res.RowsAffected, res.Error
}
