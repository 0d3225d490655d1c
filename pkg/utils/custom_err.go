package utils

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicantNotFound   = errors.New("applicant not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrBookmarkNotFound    = errors.New("bookmark not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidStatus       = errors.New("invalid pipeline status")
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrStorageError        = errors.New("object storage error")
	ErrDatabaseError       = errors.New("database error")
)
