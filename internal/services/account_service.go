package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/storage"
	"lumijob/pkg/utils"
)

const maxUploadSize = 5 << 20

// FileUpload is a single multipart file handed over by a controller.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, req request_models.CreateAccountRequest) (*db_models.Account, error)
	GetAccount(ctx context.Context, email string) (*db_models.Account, error)
	SetRole(ctx context.Context, email, role string) error
	CheckRole(ctx context.Context, email string) (db_models.Role, error)
	ResolveRole(ctx context.Context, email string) (string, error)
	UpdateProfile(ctx context.Context, email string, req request_models.UpdateProfileRequest) error
	GetCandidateProfile(ctx context.Context, email string) (*db_models.CandidateProfile, error)
	UpdatePhoto(ctx context.Context, email string, file FileUpload) (string, error)
	UploadResume(ctx context.Context, email string, file FileUpload) (string, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	profileRepo repositories.ProfileRepository
	store       storage.ObjectStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	store storage.ObjectStore,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, req request_models.CreateAccountRequest) (*db_models.Account, error) {
	email := normalizeEmail(req.Email)
	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", utils.ErrDatabaseError)
	}
	if existing != nil {
		return nil, utils.ErrAccountExists
	}

	account := &db_models.Account{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  db_models.Role(req.Role),
		Photo: req.Photo,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", utils.ErrDatabaseError)
	}
	return account, nil
}

func (a *AccountService) GetAccount(ctx context.Context, email string) (*db_models.Account, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find account: %w", utils.ErrDatabaseError)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func (a *AccountService) SetRole(ctx context.Context, email, role string) error {
	r := db_models.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.Valid() {
		return utils.ErrInvalidRole
	}
	n, err := a.accountRepo.UpdateRole(ctx, normalizeEmail(email), r)
	if err != nil {
		return fmt.Errorf("update role: %w", utils.ErrDatabaseError)
	}
	if n == 0 {
		return utils.ErrAccountNotFound
	}
	return nil
}

// CheckRole returns the account's role, empty when none was chosen yet.
func (a *AccountService) CheckRole(ctx context.Context, email string) (db_models.Role, error) {
	account, err := a.GetAccount(ctx, email)
	if err != nil {
		return "", err
	}
	return account.Role, nil
}

// ResolveRole backs route role checks with the stored account role.
func (a *AccountService) ResolveRole(ctx context.Context, email string) (string, error) {
	role, err := a.CheckRole(ctx, email)
	return string(role), err
}

func (a *AccountService) UpdateProfile(ctx context.Context, email string, req request_models.UpdateProfileRequest) error {
	email = normalizeEmail(email)
	account, err := a.GetAccount(ctx, email)
	if err != nil {
		return err
	}

	switch db_models.Role(strings.ToLower(req.Role)) {
	case db_models.RoleCandidate:
		if req.SalaryMax > 0 && req.SalaryMin > req.SalaryMax {
			return utils.ErrInvalidInput
		}
		profile := &db_models.CandidateProfile{
			Email:     email,
			Name:      req.Name,
			Photo:     account.Photo,
			City:      req.City,
			Country:   req.Country,
			Position:  req.Position,
			SalaryMin: req.SalaryMin,
			SalaryMax: req.SalaryMax,
		}
		if req.Skills != nil {
			profile.Skills = datatypes.NewJSONSlice(req.Skills)
		}
		err = a.profileRepo.UpsertCandidate(ctx, profile)
	case db_models.RoleCompany:
		err = a.profileRepo.UpsertCompany(ctx, &db_models.CompanyProfile{
			Email:   email,
			Name:    req.Name,
			City:    req.City,
			Country: req.Country,
			Website: req.Website,
			Sector:  req.Sector,
			About:   req.About,
		})
	default:
		return utils.ErrInvalidRole
	}
	if err != nil {
		return fmt.Errorf("upsert profile: %w", utils.ErrDatabaseError)
	}
	return nil
}

func (a *AccountService) GetCandidateProfile(ctx context.Context, email string) (*db_models.CandidateProfile, error) {
	profile, err := a.profileRepo.FindCandidateByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find candidate profile: %w", utils.ErrDatabaseError)
	}
	if profile == nil {
		return nil, utils.ErrProfileNotFound
	}
	return profile, nil
}

// UpdatePhoto stores the image and writes its URL onto the account and the
// profile of the account's role.
func (a *AccountService) UpdatePhoto(ctx context.Context, email string, file FileUpload) (string, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", utils.ErrInvalidInput
	}
	account, err := a.GetAccount(ctx, email)
	if err != nil {
		return "", err
	}

	url, err := a.upload(ctx, "photos", account.Email, file)
	if err != nil {
		return "", err
	}

	if err := a.accountRepo.UpdatePhoto(ctx, account.Email, url); err != nil {
		return "", fmt.Errorf("update account photo: %w", utils.ErrDatabaseError)
	}
	switch account.Role {
	case db_models.RoleCandidate:
		_, err = a.profileRepo.UpdateCandidatePhoto(ctx, account.Email, url)
	case db_models.RoleCompany:
		err = a.profileRepo.UpdateCompanyPhoto(ctx, account.Email, url)
	}
	if err != nil {
		return "", fmt.Errorf("update profile photo: %w", utils.ErrDatabaseError)
	}
	return url, nil
}

func isResumeType(contentType string) bool {
	switch contentType {
	case "application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	}
	return false
}

func (a *AccountService) UploadResume(ctx context.Context, email string, file FileUpload) (string, error) {
	if !isResumeType(file.ContentType) {
		return "", utils.ErrInvalidInput
	}
	account, err := a.GetAccount(ctx, email)
	if err != nil {
		return "", err
	}
	if account.Role == db_models.RoleCompany {
		return "", utils.ErrInvalidRole
	}
	profile, err := a.profileRepo.FindCandidateByEmail(ctx, account.Email)
	if err != nil {
		return "", fmt.Errorf("find candidate profile: %w", utils.ErrDatabaseError)
	}
	if profile == nil {
		return "", utils.ErrProfileNotFound
	}

	url, err := a.upload(ctx, "resumes", account.Email, file)
	if err != nil {
		return "", err
	}
	n, err := a.profileRepo.UpdateCandidateResume(ctx, account.Email, url)
	if err != nil {
		return "", fmt.Errorf("update resume: %w", utils.ErrDatabaseError)
	}
	if n == 0 {
		return "", utils.ErrProfileNotFound
	}
	return url, nil
}

func (a *AccountService) upload(ctx context.Context, kind, owner string, file FileUpload) (string, error) {
	if a.store == nil {
		return "", fmt.Errorf("object store not configured: %w", utils.ErrStorageError)
	}
	if file.Size <= 0 || file.Size > maxUploadSize {
		return "", utils.ErrInvalidInput
	}

	key := storage.ObjectKey(kind, owner, file.Name, a.now())
	if err := a.store.Put(ctx, key, file.Body, file.Size, file.ContentType); err != nil {
		a.logger.Error("upload object", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("put %s: %w", kind, utils.ErrStorageError)
	}
	url, err := a.store.URL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve %s url: %w", kind, utils.ErrStorageError)
	}
	return url, nil
}
