package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/handler"
	"github.com/sppku/sppku-backend/internal/middleware"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/response"
	"github.com/sppku/sppku-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Recap        *handler.RecapHandler
	Payment      *handler.PaymentHandler
	Import       *handler.ImportHandler
	Dashboard    *handler.DashboardHandler
	Notification *handler.NotificationHandler
	Setting      *handler.SettingHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/google", handlers.Auth.GoogleRedirect)
		auth.POST("/callback", handlers.Auth.GoogleCallback)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Public Group ───────────────────────────────────────────────
	// Read-only fee schedule so the SPA can shape its forms before login.
	public := router.Group("/api/v1/public")
	{
		public.GET("/settings", handlers.Setting.GetFeeSchedule)
	}

	// ─── 3. Admin Group (JWT + Single Session + RBAC) ──────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAdminJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Dashboard
		adminAPI.GET("/dashboard",
			middleware.RequirePermission(model.PermissionReportsRead),
			handlers.Dashboard.GetOverview,
		)

		// Recap grid + export
		adminAPI.GET("/rekap",
			middleware.RequirePermission(model.PermissionReportsRead),
			handlers.Recap.GetRecap,
		)
		adminAPI.GET("/rekap/export",
			middleware.RequirePermission(model.PermissionReportsRead),
			handlers.Recap.ExportRecap,
		)
		adminAPI.GET("/classes",
			middleware.RequirePermission(model.PermissionStudentsRead),
			handlers.Student.ListClasses,
		)

		// Roster
		adminAPI.GET("/students/:id",
			middleware.RequirePermission(model.PermissionStudentsRead),
			handlers.Student.GetStudent,
		)
		adminAPI.POST("/students",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.Student.CreateStudent,
		)
		adminAPI.PUT("/students/:id",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.Student.UpdateStudent,
		)

		// Payments
		adminAPI.POST("/payments",
			middleware.RequirePermission(model.PermissionPaymentsWrite),
			handlers.Payment.RecordPayment,
		)
		adminAPI.GET("/students/:id/payments",
			middleware.RequirePermission(model.PermissionStudentsRead),
			handlers.Payment.GetHistory,
		)

		// CSV import wizard. The template route is registered before the
		// :batch_id route so Gin matches the literal segment first.
		adminAPI.GET("/import/template",
			middleware.RequirePermission(model.PermissionImportWrite),
			middleware.CacheControl(3600),
			handlers.Import.Template,
		)
		adminAPI.POST("/import",
			middleware.RequirePermission(model.PermissionImportWrite),
			handlers.Import.Upload,
		)
		adminAPI.GET("/import/:batch_id",
			middleware.RequirePermission(model.PermissionImportWrite),
			handlers.Import.GetBatch,
		)
		adminAPI.POST("/import/:batch_id/commit",
			middleware.RequirePermission(model.PermissionImportWrite),
			handlers.Import.Commit,
		)
		adminAPI.DELETE("/import/:batch_id",
			middleware.RequirePermission(model.PermissionImportWrite),
			handlers.Import.Reset,
		)

		// Notification feed
		adminAPI.GET("/notifications",
			middleware.RequirePermission(model.PermissionNotificationsRead),
			handlers.Notification.List,
		)
		adminAPI.POST("/notifications/read-all",
			middleware.RequirePermission(model.PermissionNotificationsRead),
			handlers.Notification.MarkAllRead,
		)
		adminAPI.POST("/notifications/:id/read",
			middleware.RequirePermission(model.PermissionNotificationsRead),
			handlers.Notification.MarkRead,
		)
		adminAPI.DELETE("/notifications/:id",
			middleware.RequirePermission(model.PermissionNotificationsRead),
			handlers.Notification.Delete,
		)

		// Settings
		adminAPI.GET("/settings/fees",
			middleware.RequirePermission(model.PermissionSettingsRead),
			handlers.Setting.GetFeeSchedule,
		)
		adminAPI.PUT("/settings/fees",
			middleware.RequirePermission(model.PermissionSettingsWrite),
			handlers.Setting.UpdateFeeSchedule,
		)
	}

	// ─── 4. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notifications/stream", handlers.WS.NotificationStream)
	}

	return router
}
