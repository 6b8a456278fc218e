package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sangkips/nippo-api/internal/config"
	domainRepo "github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/response"
	"github.com/sangkips/nippo-api/internal/presentation/http/handler"
	"github.com/sangkips/nippo-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	User      *handler.UserHandler
	Store     *handler.StoreHandler
	Product   *handler.ProductHandler
	Visit     *handler.VisitHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	Health    *handler.HealthHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             zerolog.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter defaults to one built from Cfg.RateLimit
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Check)
	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewClientRateLimiter(
			middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
		)
		go rateLimiter.Run(ctx)
	}

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerUserRoutes(v1, h)
		registerStoreRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerVisitRoutes(v1, h)
		registerOrderRoutes(v1, h, deps)
		registerReportRoutes(v1, h)
	}

	return router
}

func registerUserRoutes(v1 *gin.RouterGroup, h *Handlers) {
	users := v1.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
	}
}

func registerStoreRoutes(v1 *gin.RouterGroup, h *Handlers) {
	stores := v1.Group("/stores")
	{
		stores.GET("", h.Store.List)
		stores.POST("", h.Store.Create)
		stores.GET("/:id", h.Store.Get)
		stores.PUT("/:id", h.Store.Update)
		stores.DELETE("/:id", h.Store.Delete)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerVisitRoutes(v1 *gin.RouterGroup, h *Handlers) {
	visits := v1.Group("/visits")
	{
		visits.GET("", h.Visit.List)
		visits.POST("", h.Visit.Create)
		visits.GET("/recent", h.Visit.Recent)
		visits.GET("/:id", h.Visit.Get)
		visits.PUT("/:id", h.Visit.Update)
		visits.DELETE("/:id", h.Visit.Delete)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Repeated creates with the same Idempotency-Key replay the first response
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/dashboard", h.Dashboard.Dashboard)
		orders.GET("/stats", h.Dashboard.Stats)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("", h.Report.List)
		reports.POST("", h.Report.Create)
		reports.GET("/:id", h.Report.Get)
		reports.POST("/:id/submit", h.Report.Submit)
		reports.POST("/:id/approve", h.Report.Approve)
		reports.POST("/:id/reject", h.Report.Reject)
	}
}
