package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/homevista/homevista-backend/internal/response"
	"github.com/homevista/homevista-backend/internal/service"
)

// DashboardHandler handles the admin dashboard endpoint
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles GET /api/v1/admin/dashboard. The aggregation itself
// never fails: metrics whose reads errored come back as zero values.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats := h.dashboardService.GetStats(c.Request.Context())
	response.Success(c, stats)
}
