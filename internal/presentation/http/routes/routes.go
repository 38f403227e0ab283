package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/config"
	domainRepo "github.com/sangkips/kwitansi-api/internal/domain/repository"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/handler"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/middleware"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Form     *handler.FormHandler
	Kwitansi *handler.KwitansiHandler
	Backup   *handler.BackupHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	registerFormRoutes(protected, h, deps)
	registerKwitansiRoutes(protected, h)

	// Backup
	backup := protected.Group("/backup")
	{
		backup.GET("", h.Backup.Export)
		backup.POST("/restore", h.Backup.Restore)
	}

	// Printer
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}

	// User management (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(enum.UserRoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.UpdateRole)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerFormRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	forms := protected.Group("/forms")
	{
		forms.POST("", h.Form.New)
		forms.GET("/:id", h.Form.Get)
		forms.PATCH("/:id", h.Form.Patch)
		forms.DELETE("/:id", h.Form.Discard)
		forms.POST("/:id/reset", h.Form.Reset)
		forms.POST("/:id/save", idempotency, h.Form.Save)
		forms.GET("/:id/pdf", h.Form.PDF)
		forms.POST("/:id/print", h.Form.Print)
	}
}

func registerKwitansiRoutes(protected *gin.RouterGroup, h *Handlers) {
	kwitansi := protected.Group("/kwitansi")
	{
		kwitansi.GET("/profiles", h.Kwitansi.Profiles)
		kwitansi.POST("/calculate", h.Kwitansi.Calculate)
		kwitansi.GET("/summary", h.Kwitansi.Summary)
		kwitansi.GET("/export", h.Kwitansi.Export)
		kwitansi.GET("", h.Kwitansi.List)
		kwitansi.GET("/:id", h.Kwitansi.Get)
		kwitansi.DELETE("/:id", h.Kwitansi.Delete)
		kwitansi.POST("/:id/edit", h.Form.Edit)
		kwitansi.GET("/:id/pdf", h.Kwitansi.PDF)
		kwitansi.POST("/:id/print", h.Kwitansi.Print)
	}
}
