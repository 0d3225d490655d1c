package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusError    = "error"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  StatusSuccess,
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// RespondRejected reports a business rule outcome (quota, duplicate,
// incomplete profile). It keeps HTTP 200 for existing clients but is
// distinguishable from success by Status.
func RespondRejected(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  StatusRejected,
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  StatusError,
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrProfileNotFound):
		RespondError(c, http.StatusNotFound, "Profile not found")
	case errors.Is(err, ErrJobNotFound):
		RespondError(c, http.StatusNotFound, "Job not found")
	case errors.Is(err, ErrApplicantNotFound):
		RespondError(c, http.StatusNotFound, "Applicant not found")
	case errors.Is(err, ErrApplicationNotFound):
		RespondError(c, http.StatusNotFound, "Application not found")
	case errors.Is(err, ErrBookmarkNotFound):
		RespondError(c, http.StatusNotFound, "Bookmark not found")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrAccountExists):
		RespondError(c, http.StatusConflict, "User already exists")
	case errors.Is(err, ErrConflict):
		RespondError(c, http.StatusConflict, "Request conflicts with an operation in progress")
	case errors.Is(err, ErrInvalidRole):
		RespondError(c, http.StatusBadRequest, "Invalid role specified")
	case errors.Is(err, ErrInvalidStatus):
		RespondError(c, http.StatusBadRequest, "Invalid pipeline status")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, ErrStorageError):
		zap.L().Error("object storage error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusBadGateway, "File storage unavailable")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
