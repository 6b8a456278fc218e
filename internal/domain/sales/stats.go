package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatsQuery parameterises the order statistics endpoint. Period bounds the
// totals and rankings; today, month and year sales ignore it.
type StatsQuery struct {
	AsOf        time.Time
	Scope       Scope
	Period      Period
	RankingSize int
}

// Stats are order totals for a period plus calendar window sales
type Stats struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	OrderCount     int             `json:"order_count"`
	AvgOrderAmount decimal.Decimal `json:"avg_order_amount"`
	TodaySales     decimal.Decimal `json:"today_sales"`
	MonthSales     decimal.Decimal `json:"month_sales"`
	YearSales      decimal.Decimal `json:"year_sales"`
	TopProducts    []RankingEntry  `json:"top_products"`
	TopStores      []RankingEntry  `json:"top_stores"`
}

// EmptyStats is the zero value served when the data source cannot be read
func EmptyStats() Stats {
	return Stats{
		TopProducts: []RankingEntry{},
		TopStores:   []RankingEntry{},
	}
}

// AggregateStats reduces records into Stats. Names are left as UnknownLabel.
func AggregateStats(records []OrderRecord, q StatsQuery) Stats {
	if q.RankingSize <= 0 {
		q.RankingSize = DefaultRankingSize
	}
	w := WindowsFor(q.AsOf, DefaultTrendDays)

	st := EmptyStats()
	stores := newRanker()
	products := newRanker()

	for _, r := range records {
		if !q.Scope.eligible(r) {
			continue
		}
		if w.Today.Contains(r.Date) {
			st.TodaySales = st.TodaySales.Add(r.TotalAmount)
		}
		if w.Month.Contains(r.Date) {
			st.MonthSales = st.MonthSales.Add(r.TotalAmount)
		}
		if w.Year.Contains(r.Date) {
			st.YearSales = st.YearSales.Add(r.TotalAmount)
		}
		if !q.Period.Contains(r.Date) {
			continue
		}

		st.TotalSales = st.TotalSales.Add(r.TotalAmount)
		st.OrderCount++
		stores.add(r.StoreID, r.ID, r.TotalAmount, 0)
		for _, line := range r.Lines {
			products.add(line.ProductID, r.ID, line.Amount, line.Quantity)
		}
	}

	if st.OrderCount > 0 {
		st.AvgOrderAmount = st.TotalSales.Div(decimal.NewFromInt(int64(st.OrderCount))).Round(0)
	}
	st.TopStores = stores.top(q.RankingSize)
	st.TopProducts = products.top(q.RankingSize)

	return st
}

// ComputeStats fetches and aggregates order statistics with the same
// degrade-to-empty contract as Compute.
func ComputeStats(ctx context.Context, src Source, q StatsQuery) Result[Stats] {
	w := WindowsFor(q.AsOf, DefaultTrendDays)
	span := q.Period.Union(Period{From: w.Year.Start, To: w.Year.End})

	records, err := src.OrderRecords(ctx, span, q.Scope)
	if err != nil {
		return Unavailable[Stats]{Reason: err, Empty: EmptyStats()}
	}

	st := AggregateStats(records, q)

	stores, products, err := resolveRankings(ctx, src, st.TopStores, st.TopProducts)
	if err != nil {
		return Unavailable[Stats]{Reason: err, Empty: EmptyStats()}
	}
	st.TopStores = stores
	st.TopProducts = products

	return Ready[Stats]{Data: st}
}

// Totals sums eligible records: order count and total sales
func Totals(records []OrderRecord, scope Scope) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, r := range records {
		if !scope.eligible(r) {
			continue
		}
		count++
		total = total.Add(r.TotalAmount)
	}
	return count, total
}
