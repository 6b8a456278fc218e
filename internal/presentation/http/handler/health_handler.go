package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose reachability the health check reports
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	service string
	db      Pinger
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(service string, db Pinger) *HealthHandler {
	return &HealthHandler{service: service, db: db}
}

// Check always answers 200; a failing database is reported as degraded
func (h *HealthHandler) Check(c *gin.Context) {
	database := "ok"
	if h.db == nil {
		database = "unconfigured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			database = "unavailable"
		}
	}

	status := "ok"
	if database != "ok" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"service":  h.service,
		"database": database,
	})
}
