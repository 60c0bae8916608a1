package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sppku/sppku-backend/internal/response"
	"github.com/sppku/sppku-backend/internal/service"
)

// DashboardHandler serves the financial overview.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetOverview godoc
// GET /api/v1/admin/dashboard
// Returns the KPI cards and the six-month financial series.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	year := queryYear(c)

	data, err := h.dashboardService.GetOverview(c.Request.Context(), year)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"year": year, "overview": data})
}
