package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sangkips/nippo-api/internal/config"
	"github.com/sangkips/nippo-api/internal/presentation/http/handler"
	"github.com/sangkips/nippo-api/internal/presentation/http/middleware"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})

	router := Setup(ctx, &Handlers{
		User:      handler.NewUserHandler(nil),
		Store:     handler.NewStoreHandler(nil),
		Product:   handler.NewProductHandler(nil),
		Visit:     handler.NewVisitHandler(nil, time.UTC),
		Order:     handler.NewOrderHandler(nil, time.UTC),
		Dashboard: handler.NewDashboardHandler(nil),
		Report:    handler.NewReportHandler(nil, time.UTC),
		Health:    handler.NewHealthHandler("nippo-api", nil),
	}, &Deps{
		Cfg:         &config.Config{},
		Log:         zerolog.Nop(),
		RateLimiter: limiter,
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.ClientIDHeader, "tablet-1")
		router.ServeHTTP(w, req)
		return w
	}

	health := get("/health")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.NotEmpty(t, health.Header().Get(middleware.RequestIDHeader))

	assert.Equal(t, http.StatusNotFound, get("/api/v2/orders").Code)

	assert.Equal(t, http.StatusBadRequest, get("/api/v1/orders/not-a-uuid").Code)
	assert.Equal(t, http.StatusTooManyRequests, get("/api/v1/stores/not-a-uuid").Code)
}
