// Package sales reduces historical order records into dashboard figures.
//
// Everything here is computed from already fetched records; window bounds
// derive from an explicit as-of time and never from the wall clock.
package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// UnknownLabel replaces missing categories and unresolved entity names
const UnknownLabel = "unknown"

const (
	DefaultTrendDays   = 30
	DefaultRankingSize = 10
)

// LineRecord is the aggregation view of one order line
type LineRecord struct {
	ProductID uuid.UUID
	Category  string
	Quantity  int
	Amount    decimal.Decimal
}

// OrderRecord is the aggregation view of one order
type OrderRecord struct {
	ID          uuid.UUID
	Date        time.Time
	TotalAmount decimal.Decimal
	Status      enum.OrderStatus
	StoreID     uuid.UUID
	UserID      uuid.UUID
	Lines       []LineRecord
}

// Scope narrows aggregation to a salesperson and/or a store. uuid.Nil means unset.
type Scope struct {
	UserID  uuid.UUID
	StoreID uuid.UUID
}

// Includes reports whether r falls inside the scope
func (s Scope) Includes(r OrderRecord) bool {
	if s.UserID != uuid.Nil && r.UserID != s.UserID {
		return false
	}
	if s.StoreID != uuid.Nil && r.StoreID != s.StoreID {
		return false
	}
	return true
}

// eligible reports whether r contributes to any sum
func (s Scope) eligible(r OrderRecord) bool {
	return !r.Status.IsCancelled() && s.Includes(r)
}

// Query parameterises one dashboard aggregation
type Query struct {
	AsOf          time.Time
	MonthlyTarget decimal.Decimal
	Scope         Scope
	TrendDays     int
	RankingSize   int
}

func (q Query) normalized() Query {
	if q.TrendDays <= 0 {
		q.TrendDays = DefaultTrendDays
	}
	if q.RankingSize <= 0 {
		q.RankingSize = DefaultRankingSize
	}
	return q
}

type Summary struct {
	TodaySales            decimal.Decimal `json:"today_sales"`
	MonthSales            decimal.Decimal `json:"month_sales"`
	YearSales             decimal.Decimal `json:"year_sales"`
	TodayOrderCount       int             `json:"today_order_count"`
	MonthOrderCount       int             `json:"month_order_count"`
	TargetAchievementRate int64           `json:"target_achievement_rate"`
}

// TrendPoint is one calendar day with at least one order
type TrendPoint struct {
	Date       string          `json:"date"`
	Sales      decimal.Decimal `json:"sales"`
	OrderCount int             `json:"order_count"`
}

type CategoryEntry struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"`
}

// RankingEntry is a store or product ranked by summed amount.
// Quantity is only populated for product rankings.
type RankingEntry struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderCount  int             `json:"order_count"`
	Quantity    int             `json:"quantity,omitempty"`
}

type MonthlyComparison struct {
	Month        int             `json:"month"`
	CurrentYear  decimal.Decimal `json:"current_year"`
	PreviousYear decimal.Decimal `json:"previous_year"`
}

// Dashboard is the complete sales dashboard payload
type Dashboard struct {
	Summary            Summary             `json:"summary"`
	DailyTrend         []TrendPoint        `json:"daily_sales_trend"`
	CategoryBreakdown  []CategoryEntry     `json:"product_category_breakdown"`
	TotalCategorySales decimal.Decimal     `json:"total_category_sales"`
	StoreRanking       []RankingEntry      `json:"store_ranking"`
	ProductRanking     []RankingEntry      `json:"product_ranking"`
	MonthlyComparison  []MonthlyComparison `json:"monthly_sales_comparison"`
}

// EmptyDashboard is the structurally complete zero dashboard served when the
// data source cannot be read. Every collection is empty but non-nil.
func EmptyDashboard() Dashboard {
	return Dashboard{
		DailyTrend:        []TrendPoint{},
		CategoryBreakdown: []CategoryEntry{},
		StoreRanking:      []RankingEntry{},
		ProductRanking:    []RankingEntry{},
		MonthlyComparison: []MonthlyComparison{},
	}
}
