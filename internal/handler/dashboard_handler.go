package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
)

// DashboardHandler serves the back-office dashboard aggregates.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Stats handles GET /reports/dashboard.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboards.Stats(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
