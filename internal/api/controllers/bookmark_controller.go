package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lumijob/internal/models/request_models"
	"lumijob/internal/services"
	"lumijob/pkg/middleware"
	"lumijob/pkg/utils"
)

type BookmarkController struct {
	bookmarkService services.BookmarkServiceInterface
}

func NewBookmarkController(bookmarkService services.BookmarkServiceInterface) *BookmarkController {
	return &BookmarkController{
		bookmarkService: bookmarkService,
	}
}

// GetBookmarks godoc
// @Summary List saved jobs
// @Tags Bookmarks
// @Produce json
// @Param email query string true "Owner email"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookmarks [get]
func (b *BookmarkController) GetBookmarks(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.RespondError(c, http.StatusBadRequest, "email is required")
		return
	}
	if !middleware.SameEmail(c, email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	bookmarks, err := b.bookmarkService.ListBookmarks(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookmarks, "Bookmarks retrieved")
}

// AddBookmark godoc
// @Summary Save a job
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param request body request_models.BookmarkRequest true "Bookmark payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookmarks [post]
func (b *BookmarkController) AddBookmark(c *gin.Context) {
	var req request_models.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if !middleware.SameEmail(c, req.Email) {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	bookmark, err := b.bookmarkService.AddBookmark(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"insertedId": bookmark.ID.String()}, "Bookmark saved")
}

// DeleteBookmark godoc
// @Summary Remove a saved job
// @Tags Bookmarks
// @Produce json
// @Param id path string true "Bookmark ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookmarks/{id} [delete]
func (b *BookmarkController) DeleteBookmark(c *gin.Context) {
	owner := c.GetString(middleware.ContextEmail)
	if c.GetString(middleware.ContextRole) == middleware.RoleAdmin {
		owner = ""
	}

	if err := b.bookmarkService.RemoveBookmark(c.Request.Context(), c.Param("id"), owner); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Bookmark removed")
}
