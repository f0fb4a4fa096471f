package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/config"
	domainRepo "github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/internal/presentation/http/handler"
	"github.com/sangkips/ledgerbook/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Pending     *handler.PendingHandler
	Preferences *handler.PreferencesHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	Sessions        *service.SessionService
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is optional; nil disables rate limiting
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.RecoveryMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	health := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	}
	router.GET("/health", health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health)

		// Public routes (no session required)
		registerAuthRoutes(v1, h)

		// Protected routes (session required)
		protected := v1.Group("")
		protected.Use(middleware.RequireSession(deps.Sessions))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/resend-verification", h.Auth.ResendVerification)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Session
	protected.GET("/session", h.Auth.Session)
	protected.POST("/auth/logout", h.Auth.Logout)

	// Preferences
	protected.GET("/preferences", h.Preferences.Get)
	protected.PUT("/preferences", h.Preferences.Update)

	// Customers
	registerCustomerRoutes(protected, h, deps)

	// Pending transaction
	registerPendingRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/transactions", h.Customer.ListTransactions)
		// Both writes move money upstream, so a retried request must not run twice
		once := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		})
		customers.POST("/:id/transactions", once, h.Transaction.Confirm)
		customers.POST("/:id/balance", once, h.Transaction.AdjustBalance)
	}
}

func registerPendingRoutes(protected *gin.RouterGroup, h *Handlers) {
	pending := protected.Group("/pending")
	{
		pending.GET("", h.Pending.Get)
		pending.PUT("", h.Pending.UpdateDetails)
		pending.DELETE("", h.Pending.Discard)
		pending.POST("/items", h.Pending.AddItem)
		pending.PUT("/items/:item_id", h.Pending.UpdateItem)
		pending.DELETE("/items/:item_id", h.Pending.DeleteItem)
	}
}
