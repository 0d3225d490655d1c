package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"lumijob/internal/models/request_models"
	"lumijob/internal/models/response_models"
	"lumijob/internal/services"
	"lumijob/pkg/middleware"
	"lumijob/pkg/utils"
)

type ApplicationController struct {
	applicationService services.ApplicationServiceInterface
	pipelineService    services.PipelineServiceInterface
	logger             *zap.Logger
}

func NewApplicationController(
	applicationService services.ApplicationServiceInterface,
	pipelineService services.PipelineServiceInterface,
	logger *zap.Logger,
) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		pipelineService:    pipelineService,
		logger:             logger,
	}
}

// ApplyToJob godoc
// @Summary Apply to a job
// @Description Runs quota, duplicate and profile checks, then records the application on the job and in the candidate's ledger. Business rule outcomes come back with status "rejected".
// @Tags Applications
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first successful result for the same key"
// @Param request body request_models.ApplyRequest true "Application payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /apply-to-jobs [post]
func (a *ApplicationController) ApplyToJob(c *gin.Context) {
	var req request_models.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if !middleware.SameEmail(c, req.Email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid job id")
		return
	}

	result, err := a.applicationService.Apply(c.Request.Context(), req.Email, jobID, req.CoverLetter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if result.Rejected() {
		utils.RespondRejected(c, string(result.Rejection))
		return
	}

	utils.RespondSuccess(c, response_models.InsertedResponse{InsertedID: result.InsertedID.String()}, "Application submitted")
}

// GetAppliedJobs godoc
// @Summary List a candidate's applications
// @Tags Applications
// @Produce json
// @Param email path string true "Candidate email"
// @Success 200 {object} utils.APIResponse
// @Router /get-applied-jobs/{email} [get]
func (a *ApplicationController) GetAppliedJobs(c *gin.Context) {
	email := c.Param("email")
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	records, err := a.applicationService.ListAppliedJobs(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewApplicationResponses(records), "Applications retrieved")
}

// WithdrawApplication godoc
// @Summary Withdraw an application
// @Description Removes the ledger record and the applicant entry on the job. Missing pieces are ignored.
// @Tags Applications
// @Accept json
// @Produce json
// @Param request body request_models.WithdrawRequest true "Withdraw payload"
// @Success 200 {object} utils.APIResponse
// @Router /delete-jobs-from-candidate [post]
func (a *ApplicationController) WithdrawApplication(c *gin.Context) {
	var req request_models.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if !middleware.SameEmail(c, req.Email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	res, err := a.pipelineService.Withdraw(c.Request.Context(), req.ID, req.JobID, req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"deletedCount":     res.RecordsDeleted,
		"applicantRemoved": res.SnapshotsDeleted > 0,
	}, "Application withdrawn")
}
