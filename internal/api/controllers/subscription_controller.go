package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lumijob/internal/models/request_models"
	"lumijob/internal/services"
	"lumijob/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// GetPlans godoc
// @Summary List subscription plans
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (s *SubscriptionController) GetPlans(c *gin.Context) {
	plans, err := s.subscriptionService.ListPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans retrieved")
}

// ApplySubscription godoc
// @Summary Apply a paid plan to an account
// @Description Called once the payment has settled. Sets the package and the quota for the plan's role.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body request_models.ApplySubscriptionRequest true "Settled payment"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions [post]
func (s *SubscriptionController) ApplySubscription(c *gin.Context) {
	var req request_models.ApplySubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	status, err := s.subscriptionService.ApplyPlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Subscription applied")
}
