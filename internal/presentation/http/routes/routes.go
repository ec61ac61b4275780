package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/quotify-api/internal/config"
	"github.com/sangkips/quotify-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotify-api/internal/presentation/http/handler"
	"github.com/sangkips/quotify-api/internal/presentation/http/middleware"
	"github.com/sangkips/quotify-api/pkg/metrics"
	"github.com/sangkips/quotify-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Quotation *handler.QuotationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	// Ctx bounds background work started by middleware
	Ctx context.Context
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	ctx := deps.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	response.ExposeErrorDetails(!deps.Cfg.App.IsProduction())

	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{})))

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found - "+c.Request.URL.Path)
	})

	rateLimiter := middleware.NewRateLimiter(ctx, rateLimiterConfig(&deps.Cfg.RateLimit))

	api := router.Group("/api")
	{
		// Public routes (no authentication required), limited per client IP
		registerAuthRoutes(api, h, rateLimiter.Middleware())

		// Protected routes (authentication required), limited per user
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	rl.CleanupInterval = 5 * time.Minute
	rl.EntryTTL = 10 * time.Minute
	return rl
}

func registerAuthRoutes(api *gin.RouterGroup, h *Handlers, limit gin.HandlerFunc) {
	auth := api.Group("/auth", limit)
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/auth/me", h.Auth.Me)

	registerQuotationRoutes(protected, h)
}

func registerQuotationRoutes(protected *gin.RouterGroup, h *Handlers) {
	quotations := protected.Group("/quotations")
	{
		quotations.POST("", h.Quotation.Create)
		quotations.GET("", h.Quotation.List)
		quotations.POST("/preview-totals", h.Quotation.PreviewTotals)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.PUT("/:id", h.Quotation.Update)
		quotations.DELETE("/:id", h.Quotation.Delete)
		quotations.GET("/:id/pdf", h.Quotation.DownloadPDF)
		quotations.GET("/:id/excel", h.Quotation.DownloadExcel)
		quotations.PATCH("/:id/finalize", h.Quotation.Finalize)
	}
}
