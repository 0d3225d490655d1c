package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"lumijob/pkg/utils"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

func (h *HealthController) Root(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to LumiJob")
}

// Health godoc
// @Summary Liveness and database check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}
	utils.RespondSuccess(c, gin.H{"status": "ok"}, "Healthy")
}
