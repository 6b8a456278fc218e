package sales

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate reduces records into a dashboard. Cancelled and out-of-scope
// records are ignored. Ranking names are left as UnknownLabel; see ResolveNames.
func Aggregate(records []OrderRecord, q Query) Dashboard {
	q = q.normalized()
	w := WindowsFor(q.AsOf, q.TrendDays)
	loc := q.AsOf.Location()

	dash := EmptyDashboard()
	trend := make(map[string]*TrendPoint)
	categories := make(map[string]decimal.Decimal)
	stores := newRanker()
	products := newRanker()
	current := make([]decimal.Decimal, 12)
	previous := make([]decimal.Decimal, 12)

	for _, r := range records {
		if !q.Scope.eligible(r) {
			continue
		}

		if w.Today.Contains(r.Date) {
			dash.Summary.TodaySales = dash.Summary.TodaySales.Add(r.TotalAmount)
			dash.Summary.TodayOrderCount++
		}

		if w.Month.Contains(r.Date) {
			dash.Summary.MonthSales = dash.Summary.MonthSales.Add(r.TotalAmount)
			dash.Summary.MonthOrderCount++
			stores.add(r.StoreID, r.ID, r.TotalAmount, 0)

			for _, line := range r.Lines {
				label := line.Category
				if label == "" {
					label = UnknownLabel
				}
				categories[label] = categories[label].Add(line.Amount)
				products.add(line.ProductID, r.ID, line.Amount, line.Quantity)
			}
		}

		month := int(r.Date.In(loc).Month()) - 1
		switch {
		case w.Year.Contains(r.Date):
			dash.Summary.YearSales = dash.Summary.YearSales.Add(r.TotalAmount)
			current[month] = current[month].Add(r.TotalAmount)
		case w.PreviousYear.Contains(r.Date):
			previous[month] = previous[month].Add(r.TotalAmount)
		}

		if w.Trend.Contains(r.Date) {
			key := r.Date.In(loc).Format(DateLayout)
			point, ok := trend[key]
			if !ok {
				point = &TrendPoint{Date: key}
				trend[key] = point
			}
			point.Sales = point.Sales.Add(r.TotalAmount)
			point.OrderCount++
		}
	}

	dash.Summary.TargetAchievementRate = Percent(dash.Summary.MonthSales, q.MonthlyTarget)
	dash.DailyTrend = trendPoints(trend)
	dash.CategoryBreakdown, dash.TotalCategorySales = categoryBreakdown(categories)
	dash.StoreRanking = stores.top(q.RankingSize)
	dash.ProductRanking = products.top(q.RankingSize)

	dash.MonthlyComparison = make([]MonthlyComparison, 12)
	for i := range dash.MonthlyComparison {
		dash.MonthlyComparison[i] = MonthlyComparison{
			Month:        i + 1,
			CurrentYear:  current[i],
			PreviousYear: previous[i],
		}
	}

	return dash
}

// Percent returns round(part / whole × 100) as an integer, or 0 when whole is not positive
func Percent(part, whole decimal.Decimal) int64 {
	if whole.Sign() <= 0 {
		return 0
	}
	return part.Mul(hundred).Div(whole).Round(0).IntPart()
}

func trendPoints(byDay map[string]*TrendPoint) []TrendPoint {
	points := make([]TrendPoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func categoryBreakdown(byLabel map[string]decimal.Decimal) ([]CategoryEntry, decimal.Decimal) {
	total := decimal.Zero
	for _, amount := range byLabel {
		total = total.Add(amount)
	}

	entries := make([]CategoryEntry, 0, len(byLabel))
	for label, amount := range byLabel {
		entries = append(entries, CategoryEntry{
			Category:   label,
			Amount:     amount,
			Percentage: Percent(amount, total),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].Amount.Cmp(entries[j].Amount); c != 0 {
			return c > 0
		}
		return entries[i].Category < entries[j].Category
	})
	return entries, total
}

// ranker groups amounts by entity and counts distinct orders per entity
type ranker struct {
	entries map[uuid.UUID]*RankingEntry
	orders  map[uuid.UUID]map[uuid.UUID]struct{}
}

func newRanker() *ranker {
	return &ranker{
		entries: make(map[uuid.UUID]*RankingEntry),
		orders:  make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (rk *ranker) add(id, orderID uuid.UUID, amount decimal.Decimal, quantity int) {
	e, ok := rk.entries[id]
	if !ok {
		e = &RankingEntry{ID: id, Name: UnknownLabel}
		rk.entries[id] = e
		rk.orders[id] = make(map[uuid.UUID]struct{})
	}
	e.TotalAmount = e.TotalAmount.Add(amount)
	e.Quantity += quantity
	rk.orders[id][orderID] = struct{}{}
	e.OrderCount = len(rk.orders[id])
}

// top returns at most n entries by amount desc, ties broken by id
func (rk *ranker) top(n int) []RankingEntry {
	out := make([]RankingEntry, 0, len(rk.entries))
	for _, e := range rk.entries {
		out = append(out, *e)
	}
	sortRanking(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortRanking(entries []RankingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].TotalAmount.Cmp(entries[j].TotalAmount); c != 0 {
			return c > 0
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

// RankingIDs lists the entity ids of entries in order
func RankingIDs(entries []RankingEntry) []uuid.UUID {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// ResolveNames returns a copy of entries with display names taken from names.
// Ids missing from names, or mapped to an empty name, keep UnknownLabel.
func ResolveNames(entries []RankingEntry, names map[uuid.UUID]string) []RankingEntry {
	out := make([]RankingEntry, len(entries))
	for i, e := range entries {
		e.Name = UnknownLabel
		if name := names[e.ID]; name != "" {
			e.Name = name
		}
		out[i] = e
	}
	return out
}
