package sales

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = at(2024, time.March, 15, 14)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func order(date time.Time, total string, lines ...LineRecord) OrderRecord {
	return OrderRecord{
		ID:          uuid.New(),
		Date:        date,
		TotalAmount: d(total),
		Status:      enum.OrderStatusCompleted,
		StoreID:     uuid.New(),
		UserID:      uuid.New(),
		Lines:       lines,
	}
}

func line(category, amount string) LineRecord {
	return LineRecord{ProductID: uuid.New(), Category: category, Quantity: 1, Amount: d(amount)}
}

func query(target string) Query {
	return Query{AsOf: asOf, MonthlyTarget: d(target)}
}

func TestAggregate_Summary(t *testing.T) {
	records := []OrderRecord{
		order(at(2024, time.March, 15, 9), "1000"),
		order(at(2024, time.March, 15, 20), "500"),
		order(at(2024, time.March, 2, 10), "2000"),
		order(at(2024, time.January, 20, 10), "4000"),
		order(at(2023, time.March, 15, 10), "8000"),
	}

	dash := Aggregate(records, query("10000"))

	assertDecimal(t, "1500", dash.Summary.TodaySales)
	assertDecimal(t, "3500", dash.Summary.MonthSales)
	assertDecimal(t, "7500", dash.Summary.YearSales)
	assert.Equal(t, 2, dash.Summary.TodayOrderCount)
	assert.Equal(t, 3, dash.Summary.MonthOrderCount)
	assert.Equal(t, int64(35), dash.Summary.TargetAchievementRate)
}

func TestAggregate_AchievementRate(t *testing.T) {
	t.Run("quarter of target", func(t *testing.T) {
		dash := Aggregate([]OrderRecord{order(at(2024, time.March, 3, 9), "2500000")}, query("10000000"))
		assert.Equal(t, int64(25), dash.Summary.TargetAchievementRate)
	})

	t.Run("zero target is guarded", func(t *testing.T) {
		dash := Aggregate([]OrderRecord{order(at(2024, time.March, 3, 9), "1000")}, query("0"))
		assert.Equal(t, int64(0), dash.Summary.TargetAchievementRate)
	})

	t.Run("exceeding target is not clamped", func(t *testing.T) {
		dash := Aggregate([]OrderRecord{order(at(2024, time.March, 3, 9), "1500")}, query("1000"))
		assert.Equal(t, int64(150), dash.Summary.TargetAchievementRate)
	})
}

func TestAggregate_CategoryBreakdown(t *testing.T) {
	records := []OrderRecord{
		order(at(2024, time.March, 10, 9), "10000", line("beer", "6000"), line("whisky", "4000")),
	}

	dash := Aggregate(records, query("1"))

	require.Len(t, dash.CategoryBreakdown, 2)
	assert.Equal(t, "beer", dash.CategoryBreakdown[0].Category)
	assert.Equal(t, int64(60), dash.CategoryBreakdown[0].Percentage)
	assert.Equal(t, "whisky", dash.CategoryBreakdown[1].Category)
	assert.Equal(t, int64(40), dash.CategoryBreakdown[1].Percentage)
	assertDecimal(t, "10000", dash.TotalCategorySales)
}

func TestAggregate_CategoryBreakdownEdges(t *testing.T) {
	records := []OrderRecord{
		order(at(2024, time.March, 10, 9), "300", line("", "100"), line("sake", "200")),
		order(at(2024, time.February, 10, 9), "900", line("sake", "900")),
		order(at(2024, time.March, 11, 9), "0", line("wine", "0")),
	}

	dash := Aggregate(records, query("1"))

	require.Len(t, dash.CategoryBreakdown, 3)
	assert.Equal(t, "sake", dash.CategoryBreakdown[0].Category)
	assertDecimal(t, "200", dash.CategoryBreakdown[0].Amount)
	assert.Equal(t, UnknownLabel, dash.CategoryBreakdown[1].Category)
	assert.Equal(t, int64(33), dash.CategoryBreakdown[1].Percentage)
	assert.Equal(t, "wine", dash.CategoryBreakdown[2].Category)
	assert.Equal(t, int64(0), dash.CategoryBreakdown[2].Percentage)
	assertDecimal(t, "300", dash.TotalCategorySales)
}

func TestAggregate_CategoryBreakdownZeroTotal(t *testing.T) {
	records := []OrderRecord{order(at(2024, time.March, 10, 9), "0", line("beer", "0"))}

	dash := Aggregate(records, query("1"))

	require.Len(t, dash.CategoryBreakdown, 1)
	assert.Equal(t, int64(0), dash.CategoryBreakdown[0].Percentage)
}

func TestAggregate_StoreRankingTopTen(t *testing.T) {
	var records []OrderRecord
	for i := 1; i <= 15; i++ {
		records = append(records, order(at(2024, time.March, 5, 9), fmt.Sprintf("%d000", i)))
	}

	dash := Aggregate(records, query("1"))

	require.Len(t, dash.StoreRanking, 10)
	assertDecimal(t, "15000", dash.StoreRanking[0].TotalAmount)
	assertDecimal(t, "6000", dash.StoreRanking[9].TotalAmount)
	for i := 1; i < len(dash.StoreRanking); i++ {
		assert.True(t, dash.StoreRanking[i-1].TotalAmount.GreaterThanOrEqual(dash.StoreRanking[i].TotalAmount))
	}
	for _, e := range dash.StoreRanking {
		assert.Equal(t, UnknownLabel, e.Name)
		assert.Equal(t, 1, e.OrderCount)
	}
}

func TestAggregate_StoreRankingGroupsOrders(t *testing.T) {
	store := uuid.New()
	a := order(at(2024, time.March, 5, 9), "100")
	b := order(at(2024, time.March, 6, 9), "250")
	outside := order(at(2024, time.February, 6, 9), "999")
	a.StoreID, b.StoreID, outside.StoreID = store, store, store

	dash := Aggregate([]OrderRecord{a, b, outside}, query("1"))

	require.Len(t, dash.StoreRanking, 1)
	assert.Equal(t, store, dash.StoreRanking[0].ID)
	assertDecimal(t, "350", dash.StoreRanking[0].TotalAmount)
	assert.Equal(t, 2, dash.StoreRanking[0].OrderCount)
}

func TestAggregate_ProductRanking(t *testing.T) {
	product := uuid.New()
	l1 := LineRecord{ProductID: product, Category: "beer", Quantity: 3, Amount: d("300")}
	l2 := LineRecord{ProductID: product, Category: "beer", Quantity: 2, Amount: d("200")}
	o := order(at(2024, time.March, 5, 9), "500", l1, l2)
	other := order(at(2024, time.March, 6, 9), "900", line("wine", "900"))

	dash := Aggregate([]OrderRecord{o, other}, query("1"))

	require.Len(t, dash.ProductRanking, 2)
	assertDecimal(t, "900", dash.ProductRanking[0].TotalAmount)
	assert.Equal(t, product, dash.ProductRanking[1].ID)
	assertDecimal(t, "500", dash.ProductRanking[1].TotalAmount)
	assert.Equal(t, 5, dash.ProductRanking[1].Quantity)
	assert.Equal(t, 1, dash.ProductRanking[1].OrderCount)
}

func TestAggregate_DailyTrend(t *testing.T) {
	records := []OrderRecord{
		order(at(2024, time.March, 15, 10), "100"),
		order(at(2024, time.March, 1, 10), "200"),
		order(at(2024, time.March, 1, 18), "50"),
		order(at(2024, time.February, 15, 10), "400"),
		order(at(2024, time.February, 14, 23), "800"),
		order(at(2024, time.March, 16, 10), "1600"),
	}

	dash := Aggregate(records, query("1"))

	require.Len(t, dash.DailyTrend, 3)
	assert.Equal(t, "2024-02-15", dash.DailyTrend[0].Date)
	assert.Equal(t, "2024-03-01", dash.DailyTrend[1].Date)
	assertDecimal(t, "250", dash.DailyTrend[1].Sales)
	assert.Equal(t, 2, dash.DailyTrend[1].OrderCount)
	assert.Equal(t, "2024-03-15", dash.DailyTrend[2].Date)
}

func TestAggregate_TrendBucketsInAsOfLocation(t *testing.T) {
	// 2024-03-14 20:00 UTC is 2024-03-15 05:00 in Tokyo
	r := order(time.Date(2024, time.March, 14, 20, 0, 0, 0, time.UTC), "700")

	dash := Aggregate([]OrderRecord{r}, query("1"))

	require.Len(t, dash.DailyTrend, 1)
	assert.Equal(t, "2024-03-15", dash.DailyTrend[0].Date)
	assertDecimal(t, "700", dash.Summary.TodaySales)
}

func TestAggregate_MonthlyComparison(t *testing.T) {
	t.Run("always twelve months", func(t *testing.T) {
		dash := Aggregate(nil, query("1"))

		require.Len(t, dash.MonthlyComparison, 12)
		for i, m := range dash.MonthlyComparison {
			assert.Equal(t, i+1, m.Month)
			assert.True(t, m.CurrentYear.IsZero())
			assert.True(t, m.PreviousYear.IsZero())
		}
	})

	t.Run("current and previous year", func(t *testing.T) {
		records := []OrderRecord{
			order(at(2024, time.March, 2, 9), "300"),
			order(at(2024, time.November, 2, 9), "1100"),
			order(at(2023, time.March, 2, 9), "30"),
			order(at(2023, time.March, 20, 9), "3"),
			order(at(2022, time.March, 2, 9), "99999"),
		}

		dash := Aggregate(records, query("1"))

		require.Len(t, dash.MonthlyComparison, 12)
		assertDecimal(t, "300", dash.MonthlyComparison[2].CurrentYear)
		assertDecimal(t, "33", dash.MonthlyComparison[2].PreviousYear)
		assertDecimal(t, "1100", dash.MonthlyComparison[10].CurrentYear)
		assertDecimal(t, "0", dash.MonthlyComparison[10].PreviousYear)
	})
}

func TestAggregate_CancelledOrdersContributeNothing(t *testing.T) {
	cancelled := order(at(2024, time.March, 15, 10), "5000", line("beer", "5000"))
	cancelled.Status = enum.OrderStatusCancelled
	lastYear := order(at(2023, time.March, 15, 10), "5000")
	lastYear.Status = enum.OrderStatusCancelled

	dash := Aggregate([]OrderRecord{cancelled, lastYear}, query("100"))

	assert.True(t, dash.Summary.TodaySales.IsZero())
	assert.True(t, dash.Summary.MonthSales.IsZero())
	assert.True(t, dash.Summary.YearSales.IsZero())
	assert.Zero(t, dash.Summary.TodayOrderCount)
	assert.Empty(t, dash.DailyTrend)
	assert.Empty(t, dash.CategoryBreakdown)
	assert.Empty(t, dash.StoreRanking)
	assert.Empty(t, dash.ProductRanking)
	for _, m := range dash.MonthlyComparison {
		assert.True(t, m.CurrentYear.IsZero())
		assert.True(t, m.PreviousYear.IsZero())
	}
}

func TestAggregate_Scope(t *testing.T) {
	mine := order(at(2024, time.March, 15, 10), "100")
	theirs := order(at(2024, time.March, 15, 11), "900")

	q := query("1")
	q.Scope = Scope{UserID: mine.UserID}
	dash := Aggregate([]OrderRecord{mine, theirs}, q)

	assertDecimal(t, "100", dash.Summary.TodaySales)
	require.Len(t, dash.StoreRanking, 1)
	assert.Equal(t, mine.StoreID, dash.StoreRanking[0].ID)

	q.Scope = Scope{StoreID: theirs.StoreID}
	dash = Aggregate([]OrderRecord{mine, theirs}, q)
	assertDecimal(t, "900", dash.Summary.TodaySales)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	records := []OrderRecord{
		order(at(2024, time.March, 15, 10), "100", line("", "100")),
		order(at(2024, time.March, 14, 10), "200", line("beer", "200")),
	}
	before := make([]OrderRecord, len(records))
	for i, r := range records {
		before[i] = r
		before[i].Lines = append([]LineRecord(nil), r.Lines...)
	}

	Aggregate(records, query("1"))

	assert.Equal(t, before, records)
}

func TestAggregate_EmptyInputIsStructurallyComplete(t *testing.T) {
	dash := Aggregate(nil, query("1000"))

	assert.NotNil(t, dash.DailyTrend)
	assert.NotNil(t, dash.CategoryBreakdown)
	assert.NotNil(t, dash.StoreRanking)
	assert.NotNil(t, dash.ProductRanking)
	assert.Len(t, dash.MonthlyComparison, 12)
	assert.True(t, dash.TotalCategorySales.IsZero())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, int64(0), Percent(d("5"), d("0")))
	assert.Equal(t, int64(0), Percent(d("5"), d("-10")))
	assert.Equal(t, int64(67), Percent(d("2"), d("3")))
	assert.Equal(t, int64(50), Percent(d("1"), d("2")))
	assert.Equal(t, int64(1), Percent(d("1"), d("200")))
}

func TestResolveNames(t *testing.T) {
	known, unnamed, missing := uuid.New(), uuid.New(), uuid.New()
	entries := []RankingEntry{{ID: known, Name: UnknownLabel}, {ID: unnamed}, {ID: missing}}

	got := ResolveNames(entries, map[uuid.UUID]string{known: "Sakura Liquor", unnamed: ""})

	assert.Equal(t, "Sakura Liquor", got[0].Name)
	assert.Equal(t, UnknownLabel, got[1].Name)
	assert.Equal(t, UnknownLabel, got[2].Name)
	assert.Equal(t, UnknownLabel, entries[0].Name)
}
