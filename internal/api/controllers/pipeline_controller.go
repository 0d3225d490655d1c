package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/models/response_models"
	"lumijob/internal/services"
	"lumijob/pkg/middleware"
	"lumijob/pkg/utils"
)

type PipelineController struct {
	pipelineService services.PipelineServiceInterface
	jobService      services.JobServiceInterface
}

func NewPipelineController(
	pipelineService services.PipelineServiceInterface,
	jobService services.JobServiceInterface,
) *PipelineController {
	return &PipelineController{
		pipelineService: pipelineService,
		jobService:      jobService,
	}
}

// ownsJob writes the error response and returns false unless the caller
// posted the job.
func (p *PipelineController) ownsJob(c *gin.Context, jobID uuid.UUID) bool {
	job, err := p.jobService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return false
	}
	if !middleware.SameEmail(c, job.CompanyEmail) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return false
	}
	return true
}

// ApplicantsByStatus returns a handler listing the applicants of the job
// in the path that are at status.
//
// @Summary List a job's applicants at one pipeline stage
// @Tags Pipeline
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /dnd-applicants/{id} [get]
// @Router /dnd-pre-select/{id} [get]
// @Router /dnd-interview/{id} [get]
// @Router /dnd-selected/{id} [get]
func (p *PipelineController) ApplicantsByStatus(status db_models.PipelineStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.HandleServiceError(c, utils.ErrJobNotFound)
			return
		}
		if !p.ownsJob(c, jobID) {
			return
		}

		applicants, err := p.pipelineService.ListByStatus(c.Request.Context(), jobID, status)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}

		utils.RespondSuccess(c, response_models.NewApplicantResponses(applicants), "Applicants retrieved")
	}
}

// SelectedApplicants godoc
// @Summary Selected applicants across all jobs of a company
// @Description One row per applicant, with the ids of every job they were selected for.
// @Tags Pipeline
// @Produce json
// @Param companiEmail query string true "Company email"
// @Success 200 {object} utils.APIResponse
// @Router /selectedApplicants [get]
func (p *PipelineController) SelectedApplicants(c *gin.Context) {
	email := c.Query("companiEmail")
	if email == "" {
		utils.RespondError(c, http.StatusBadRequest, "companiEmail is required")
		return
	}
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	rows, err := p.pipelineService.ListSelectedAcrossCompany(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rows, "Selected applicants retrieved")
}

// UpdateApplicantStatus godoc
// @Summary Move an applicant to another pipeline stage
// @Description Any stage may be set from any other.
// @Tags Pipeline
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body request_models.UpdateApplicantStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /updateApplicantsStatus/{id} [put]
func (p *PipelineController) UpdateApplicantStatus(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrJobNotFound)
		return
	}
	if !p.ownsJob(c, jobID) {
		return
	}
	var req request_models.UpdateApplicantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	applicantID, err := uuid.Parse(req.ApplicantID)
	if err != nil {
		utils.HandleServiceError(c, utils.ErrApplicantNotFound)
		return
	}

	snap, err := p.pipelineService.SetStatus(c.Request.Context(), jobID, applicantID, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewApplicantResponse(*snap), "Applicant status updated")
}

// ScheduleInterview godoc
// @Summary Schedule an interview
// @Tags Pipeline
// @Accept json
// @Produce json
// @Param request body request_models.ScheduleInterviewRequest true "Interview payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /schedule-interview [post]
func (p *PipelineController) ScheduleInterview(c *gin.Context) {
	var req request_models.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		utils.HandleServiceError(c, utils.ErrJobNotFound)
		return
	}
	if !p.ownsJob(c, jobID) {
		return
	}

	res, err := p.pipelineService.ScheduleInterview(c.Request.Context(), jobID, req.Email, db_models.InterviewSchedule{
		Date:        req.Date,
		Time:        req.Time,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewScheduledInterviewResponse(res.Record, *res.Applicant), "Interview scheduled")
}
