package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nippo-api/internal/application/service"
	"github.com/sangkips/nippo-api/internal/domain/sales"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// DemoModeMessage accompanies empty payloads served while the database is unreachable
const DemoModeMessage = "demo mode: data source unavailable"

// DashboardHandler serves sales analytics
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Dashboard handles the sales dashboard. A data source failure still answers
// 200 with the empty dashboard.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	req := service.DashboardRequest{Scope: scope}
	if raw := strings.TrimSpace(c.Query("target")); raw != "" {
		if target, err := decimal.NewFromString(raw); err == nil {
			req.Target = &target
		}
	}
	asOf, err := parseTime(c.Query("as_of"), h.dashboardService.Location())
	if err != nil {
		response.BadRequest(c, "Invalid as_of")
		return
	}
	req.AsOf = asOf

	res := h.dashboardService.Dashboard(c.Request.Context(), req)
	if res.Err() != nil {
		response.OK(c, DemoModeMessage, res.Value())
		return
	}

	response.OK(c, "Dashboard retrieved successfully", res.Value())
}

// Stats handles order statistics for an optional inclusive date range
func (h *DashboardHandler) Stats(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	start, end, err := queryDateRange(c, h.dashboardService.Location())
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var period sales.Period
	if start != nil {
		period.From = *start
	}
	if end != nil {
		period.To = end.Add(time.Nanosecond)
	}

	res := h.dashboardService.Stats(c.Request.Context(), service.StatsRequest{Scope: scope, Period: period})
	if res.Err() != nil {
		response.OK(c, DemoModeMessage, res.Value())
		return
	}

	response.OK(c, "Order statistics retrieved successfully", res.Value())
}

func (h *DashboardHandler) scope(c *gin.Context) (sales.Scope, bool) {
	var scope sales.Scope
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return scope, false
	}
	storeID, err := queryUUID(c, "store_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return scope, false
	}
	if userID != nil {
		scope.UserID = *userID
	}
	if storeID != nil {
		scope.StoreID = *storeID
	}
	return scope, true
}
