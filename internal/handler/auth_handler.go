package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/middleware"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
	"github.com/sppku/sppku-backend/internal/response"
	"github.com/sppku/sppku-backend/internal/service"
	"github.com/sppku/sppku-backend/internal/validator"
)

// AuthHandler handles admin sign-in, both local and hosted.
type AuthHandler struct {
	authService *service.AuthService
	adminRepo   *repository.AdminRepository
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, adminRepo *repository.AdminRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		adminRepo:   adminRepo,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates with email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, admin, err := h.authService.LoginLocal(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		h.log.Error().Err(err).Msg("local login failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}

// GoogleRedirect godoc
// GET /api/v1/auth/google
// Returns the hosted sign-in URL. The SPA redirects the browser there.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	state := uuid.New().String()
	response.Success(c, http.StatusOK, gin.H{
		"auth_url": h.authService.AuthURL(state),
		"state":    state,
	})
}

// GoogleCallback godoc
// POST /api/v1/auth/callback
// Exchanges the authorization code delivered to the SPA's redirect page.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var req model.AuthCallbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, admin, err := h.authService.LoginWithCode(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExchangeFailed):
			response.Fail(c, http.StatusUnauthorized, response.ErrAuthExchangeFailed)
		case errors.Is(err, service.ErrAdminNotRegistered):
			response.Fail(c, http.StatusForbidden, response.ErrAdminNotRegistered)
		default:
			h.log.Error().Err(err).Msg("hosted login failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}

// Logout godoc
// POST /api/v1/auth/logout
// Drops the active session so the current token stops validating.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.AdminID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "berhasil keluar"})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the signed-in admin's profile and permissions.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	admin, err := h.adminRepo.GetByID(c.Request.Context(), claims.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": admin, "permissions": claims.Permissions})
}
