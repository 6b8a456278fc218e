package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sangkips/nippo-api/internal/application/service"
	"github.com/sangkips/nippo-api/internal/config"
	"github.com/sangkips/nippo-api/internal/domain/pricing"
	"github.com/sangkips/nippo-api/internal/infrastructure/cache"
	"github.com/sangkips/nippo-api/internal/infrastructure/database"
	"github.com/sangkips/nippo-api/internal/infrastructure/repository"
	"github.com/sangkips/nippo-api/internal/presentation/http/handler"
	"github.com/sangkips/nippo-api/internal/presentation/http/middleware"
	"github.com/sangkips/nippo-api/internal/presentation/http/routes"
	"github.com/sangkips/nippo-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const idempotencyPurgeInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log.Format, cfg.Log.Level)
	loc := cfg.App.Location()

	// Money fields are written as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database handle")
	}
	defer sqlDB.Close()

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db, log); err != nil {
		log.Warn().Err(err).Msg("failed to seed default data")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportRepo := repository.NewDailyReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	salesRepo := repository.NewSalesRepository(db)

	// Initialize services
	calculator := pricing.NewCalculator(cfg.Sales.CurrencyScale)
	orderService := service.NewOrderService(orderRepo, productRepo, storeRepo, calculator)

	var dashboardCache service.DashboardCache
	if c := newDashboardCache(ctx, &cfg.Redis, log); c != nil {
		dashboardCache = c
		orderService.WithDashboardInvalidator(c)
	}
	dashboardService := service.NewDashboardService(salesRepo, cfg.Sales, loc, dashboardCache, log)

	handlers := &routes.Handlers{
		User:      handler.NewUserHandler(service.NewUserService(userRepo)),
		Store:     handler.NewStoreHandler(service.NewStoreService(storeRepo)),
		Product:   handler.NewProductHandler(service.NewProductService(productRepo)),
		Visit:     handler.NewVisitHandler(service.NewVisitService(visitRepo, storeRepo, userRepo), loc),
		Order:     handler.NewOrderHandler(orderService, loc),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(service.NewReportService(reportRepo, visitRepo, orderRepo, userRepo, loc), loc),
		Health:    handler.NewHealthHandler(cfg.App.Name, sqlDB),
	}

	// Setup routes
	router := routes.Setup(ctx, handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
	})

	go middleware.PurgeExpiredIdempotencyKeys(ctx, idempotencyRepo, idempotencyPurgeInterval, log)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Str("port", port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newDashboardCache connects to Redis when configured. It returns nil when
// Redis is off or unreachable.
func newDashboardCache(ctx context.Context, cfg *config.RedisConfig, log zerolog.Logger) *cache.DashboardCache {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, dashboard cache disabled")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", cfg.Addr).Msg("dashboard cache enabled")
	return cache.NewDashboardCache(client, cfg.DashboardTTL)
}
