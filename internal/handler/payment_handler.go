package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/middleware"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
	"github.com/sppku/sppku-backend/internal/response"
	"github.com/sppku/sppku-backend/internal/service"
	"github.com/sppku/sppku-backend/internal/validator"
)

// PaymentHandler records payment entries and serves per-student history.
type PaymentHandler struct {
	paymentService   *service.PaymentService
	dashboardService *service.DashboardService
	adminRepo        *repository.AdminRepository
	log              zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(
	paymentService *service.PaymentService,
	dashboardService *service.DashboardService,
	adminRepo *repository.AdminRepository,
	log zerolog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService:   paymentService,
		dashboardService: dashboardService,
		adminRepo:        adminRepo,
		log:              log.With().Str("component", "payment_handler").Logger(),
	}
}

// RecordPayment godoc
// POST /api/v1/admin/payments
// Validates and applies a payment entry, then refreshes the dashboard cache.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req model.RecordPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	year := queryYear(c)
	ledger, err := h.paymentService.RecordPayment(c.Request.Context(), &req, year, h.operatorName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMonthRequired), errors.Is(err, service.ErrMonthOutOfRange):
			response.Fail(c, http.StatusBadRequest, response.ErrMonthRequired)
		case errors.Is(err, service.ErrMonthNotAllowed), errors.Is(err, service.ErrFeeDisabled):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		case errors.Is(err, service.ErrCustomLabelRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrCustomLabelRequired)
		case errors.Is(err, service.ErrStageNotConfigured):
			response.Fail(c, http.StatusBadRequest, response.ErrStageNotConfigured)
		case errors.Is(err, repository.ErrStudentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	h.dashboardService.Invalidate(c.Request.Context(), year)
	response.Success(c, http.StatusCreated, gin.H{"payment": ledger})
}

// GetHistory godoc
// GET /api/v1/admin/students/:id/payments
// Returns a student's recent ledger entries, newest first.
func (h *PaymentHandler) GetHistory(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payments, err := h.paymentService.GetHistory(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// operatorName resolves the display name stamped onto payment records.
// Falls back to the admin ID when the profile lookup fails.
func (h *PaymentHandler) operatorName(c *gin.Context) string {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return ""
	}
	admin, err := h.adminRepo.GetByID(c.Request.Context(), claims.AdminID)
	if err != nil {
		h.log.Warn().Err(err).Int("admin_id", claims.AdminID).Msg("operator lookup failed")
		return "admin#" + strconv.Itoa(claims.AdminID)
	}
	return admin.Name
}
