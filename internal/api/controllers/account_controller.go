package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"lumijob/internal/models/request_models"
	"lumijob/internal/models/response_models"
	"lumijob/internal/services"
	"lumijob/pkg/middleware"
	"lumijob/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// CreateAccount godoc
// @Summary Create an account
// @Description Registers the identity record after sign-in with the identity provider
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.CreateAccountRequest true "Account payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users [post]
func (a *AccountController) CreateAccount(c *gin.Context) {
	var req request_models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if !middleware.SameEmail(c, req.Email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	account, err := a.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Code:    http.StatusCreated,
		Message: "Account created successfully",
		TraceID: c.GetString("trace_id"),
		Data:    response_models.InsertedResponse{InsertedID: account.ID.String()},
	})
}

// GetAccount godoc
// @Summary Get an account
// @Tags Accounts
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{email} [get]
// @Router /user-profile/{email} [get]
func (a *AccountController) GetAccount(c *gin.Context) {
	email := c.Param("email")
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	account, err := a.accountService.GetAccount(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewAccountResponse(*account), "Account fetched successfully")
}

// SetRole godoc
// @Summary Choose the account role
// @Tags Accounts
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Param request body request_models.SetRoleRequest true "candidate or company"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /roles/{email} [put]
func (a *AccountController) SetRole(c *gin.Context) {
	email := c.Param("email")
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}
	var req request_models.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.SetRole(c.Request.Context(), email, req.Role); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Role updated")
}

// CheckRole godoc
// @Summary Get the account role
// @Description Data.role is the role, or false when the account has not picked one.
// @Tags Accounts
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /check-role/{email} [get]
// @Router /check-which-role/{email} [get]
func (a *AccountController) CheckRole(c *gin.Context) {
	email := c.Param("email")
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	role, err := a.accountService.CheckRole(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.CheckRoleResponse{Role: false}
	if role != "" {
		resp.Role = string(role)
	}
	utils.RespondSuccess(c, resp, "Role fetched successfully")
}

// UpdateProfile godoc
// @Summary Create or update the role profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Param request body request_models.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user-update/{email} [put]
func (a *AccountController) UpdateProfile(c *gin.Context) {
	email := c.Param("email")
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.UpdateProfile(c.Request.Context(), email, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Profile updated")
}

// GetCandidateProfile godoc
// @Summary Get a candidate profile
// @Tags Profiles
// @Produce json
// @Param email path string true "Candidate email"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /specific-candidate/{email} [get]
func (a *AccountController) GetCandidateProfile(c *gin.Context) {
	profile, err := a.accountService.GetCandidateProfile(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile fetched successfully")
}

// UpdatePhoto godoc
// @Summary Upload a profile photo
// @Tags Profiles
// @Accept multipart/form-data
// @Produce json
// @Param email path string true "Account email"
// @Param photo formData file true "Image file"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /update-photo/{email} [post]
func (a *AccountController) UpdatePhoto(c *gin.Context) {
	a.upload(c, "photo", a.accountService.UpdatePhoto, "Photo updated")
}

// UploadResume godoc
// @Summary Upload a resume
// @Tags Profiles
// @Accept multipart/form-data
// @Produce json
// @Param email path string true "Candidate email"
// @Param resume formData file true "PDF or Word document"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /upload-resume/{email} [post]
func (a *AccountController) UploadResume(c *gin.Context) {
	a.upload(c, "resume", a.accountService.UploadResume, "Resume uploaded")
}

type uploadFunc func(ctx context.Context, email string, file services.FileUpload) (string, error)

func (a *AccountController) upload(c *gin.Context, field string, store uploadFunc, message string) {
	email := c.Param("email")
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}
	header, err := c.FormFile(field)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Missing file field "+field)
		return
	}
	f, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unreadable upload")
		return
	}
	defer f.Close()

	url, err := store(c.Request.Context(), email, services.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.UploadResponse{URL: url}, message)
}
