package controllers

import (
	"github.com/gin-gonic/gin"
	"lumijob/internal/services"
	"lumijob/pkg/utils"
)

type AdminController struct {
	reconcileService services.ReconcileServiceInterface
}

func NewAdminController(reconcileService services.ReconcileServiceInterface) *AdminController {
	return &AdminController{
		reconcileService: reconcileService,
	}
}

// Reconcile godoc
// @Summary Repair one-sided applications
// @Description Recreates missing ledger records and applicant rows, removing records whose candidate profile is gone. 409 while a run is in progress.
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/reconcile [post]
func (a *AdminController) Reconcile(c *gin.Context) {
	report, err := a.reconcileService.Reconcile(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Reconcile finished")
}
