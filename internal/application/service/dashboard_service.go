package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/nippo-api/internal/config"
	"github.com/sangkips/nippo-api/internal/domain/sales"
	"github.com/sangkips/nippo-api/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
)

// DashboardCache is the subset of the Redis cache the dashboard uses
type DashboardCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
}

// DashboardService computes the sales dashboard and order statistics
type DashboardService struct {
	source   sales.Source
	settings config.SalesConfig
	loc      *time.Location
	cache    DashboardCache
	log      zerolog.Logger
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(
	source sales.Source,
	settings config.SalesConfig,
	loc *time.Location,
	dashCache DashboardCache,
	log zerolog.Logger,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		source:   source,
		settings: settings,
		loc:      loc,
		cache:    dashCache,
		log:      log.With().Str("component", "dashboard").Logger(),
		now:      time.Now,
	}
}

// DashboardRequest selects the dashboard to compute. Nil fields take
// configured defaults.
type DashboardRequest struct {
	Scope  sales.Scope
	Target *decimal.Decimal
	AsOf   *time.Time
}

// StatsRequest selects the order statistics to compute
type StatsRequest struct {
	Scope  sales.Scope
	Period sales.Period
}

// Dashboard computes the dashboard. It never fails; an unreadable source
// yields an Unavailable result carrying the empty dashboard.
func (s *DashboardService) Dashboard(ctx context.Context, req DashboardRequest) sales.Result[sales.Dashboard] {
	q := sales.Query{
		AsOf:          s.asOf(req.AsOf),
		MonthlyTarget: s.settings.MonthlyTarget,
		Scope:         req.Scope,
		TrendDays:     s.settings.TrendDays,
		RankingSize:   s.settings.RankingSize,
	}
	if req.Target != nil {
		q.MonthlyTarget = *req.Target
	}

	key := cache.DashboardKey(q)
	if s.cache != nil {
		var cached sales.Dashboard
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("dashboard cache read failed")
		}
		if hit {
			return sales.Ready[sales.Dashboard]{Data: cached}
		}
	}

	res := sales.Compute(ctx, s.source, q)
	if err := res.Err(); err != nil {
		s.log.Warn().Err(err).
			Str("as_of", q.AsOf.Format(sales.DateLayout)).
			Msg("sales data source unavailable, serving empty dashboard")
		return res
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, res.Value()); err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("dashboard cache write failed")
		}
	}
	return res
}

// Stats computes order statistics with the same degrade-to-empty contract
func (s *DashboardService) Stats(ctx context.Context, req StatsRequest) sales.Result[sales.Stats] {
	res := sales.ComputeStats(ctx, s.source, sales.StatsQuery{
		AsOf:        s.asOf(nil),
		Scope:       req.Scope,
		Period:      req.Period,
		RankingSize: s.settings.RankingSize,
	})
	if err := res.Err(); err != nil {
		s.log.Warn().Err(err).Msg("sales data source unavailable, serving empty stats")
	}
	return res
}

// Location is the time zone calendar windows are anchored in
func (s *DashboardService) Location() *time.Location {
	return s.loc
}

func (s *DashboardService) asOf(t *time.Time) time.Time {
	if t != nil {
		return t.In(s.loc)
	}
	return s.now().In(s.loc)
}
