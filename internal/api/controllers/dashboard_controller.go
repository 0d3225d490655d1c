package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"lumijob/internal/services"
	"lumijob/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get dashboard report
// @Description Accounts by role, job volume and categories, the applicant funnel by pipeline status, plan mix and revenue
// @Tags Admin
// @Produce json
// @Param last_days query int false "Lookback window in days for the new-activity counts (1-365, default 30)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	days := 0
	if v := c.Query("last_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			utils.RespondError(c, http.StatusBadRequest, "last_days must be between 1 and 365")
			return
		}
		days = n
	}

	report, err := p.dashboardService.BuildDashboard(c.Request.Context(), days)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard generated")
}
