package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/response"
	"github.com/sppku/sppku-backend/internal/service"
)

// SettingHandler serves the institution fee schedule.
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetFeeSchedule godoc
// GET /api/v1/admin/settings/fees
// GET /api/v1/public/settings
// Returns the active fee schedule.
func (h *SettingHandler) GetFeeSchedule(c *gin.Context) {
	sched, err := h.settingService.GetFeeSchedule(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fee_schedule": sched})
}

// UpdateFeeSchedule godoc
// PUT /api/v1/admin/settings/fees
// Replaces the fee schedule. The recap grid and payment form follow it.
func (h *SettingHandler) UpdateFeeSchedule(c *gin.Context) {
	var sched model.FeeSchedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if sched.Validate() != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSchedule)
		return
	}

	if err := h.settingService.UpdateFeeSchedule(c.Request.Context(), &sched); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fee_schedule": sched})
}
