package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lumijob/internal/models/request_models"
	"lumijob/internal/models/response_models"
	"lumijob/internal/repositories"
	"lumijob/internal/services"
	"lumijob/pkg/middleware"
	"lumijob/pkg/utils"
)

type JobController struct {
	jobService services.JobServiceInterface
}

func NewJobController(jobService services.JobServiceInterface) *JobController {
	return &JobController{
		jobService: jobService,
	}
}

// PostJob godoc
// @Summary Post a job
// @Description Creates a job posting when the company's plan still has room.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body request_models.PostJobRequest true "Job payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /post-jobs [post]
func (j *JobController) PostJob(c *gin.Context) {
	var req request_models.PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if !middleware.SameEmail(c, req.Email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	id, rejection, err := j.jobService.PostJob(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if rejection != "" {
		utils.RespondRejected(c, string(rejection))
		return
	}

	utils.RespondSuccess(c, response_models.InsertedResponse{InsertedID: id.String()}, "Job posted")
}

// GetCompanyPostedJobs godoc
// @Summary Jobs posted by a company
// @Tags Jobs
// @Produce json
// @Param email path string true "Company email"
// @Success 200 {object} utils.APIResponse
// @Router /get-company-posted-jobs/{email} [get]
func (j *JobController) GetCompanyPostedJobs(c *gin.Context) {
	email := c.Param("email")
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	jobs, err := j.jobService.ListCompanyJobs(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewJobResponses(jobs), "Jobs retrieved")
}

// GetAllJobs godoc
// @Summary List jobs, newest first
// @Tags Jobs
// @Produce json
// @Param page query int false "Page, starting at 1"
// @Param pageSize query int false "Page size, at most 100"
// @Success 200 {object} utils.APIResponse
// @Router /all-job-posts [get]
func (j *JobController) GetAllJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	jobs, err := j.jobService.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewJobResponses(jobs), "Jobs retrieved")
}

// SearchJobs godoc
// @Summary Search jobs by title
// @Tags Jobs
// @Produce json
// @Param search query string true "Search term"
// @Success 200 {object} utils.APIResponse
// @Router /job-Search [get]
func (j *JobController) SearchJobs(c *gin.Context) {
	jobs, err := j.jobService.SearchJobs(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewJobResponses(jobs), "Jobs retrieved")
}

// GetJob godoc
// @Summary Get one job with its applicants
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /jobs/{id} [get]
func (j *JobController) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrJobNotFound)
		return
	}

	job, err := j.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewJobResponse(*job), "Job retrieved")
}

// FilterJobs returns a handler that filters jobs on the path parameter
// named param: category, date, jobType or salary.
func (j *JobController) FilterJobs(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := c.Param(param)
		var filter repositories.JobFilter
		switch param {
		case "category":
			filter.Category = value
		case "date":
			filter.Date = value
		case "jobType":
			filter.JobType = value
		case "salary":
			filter.Salary = value
		}

		jobs, err := j.jobService.FilterJobs(c.Request.Context(), filter)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}

		utils.RespondSuccess(c, response_models.NewJobResponses(jobs), "Jobs retrieved")
	}
}
