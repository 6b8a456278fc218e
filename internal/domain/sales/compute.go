package sales

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Source supplies raw records and display names to the aggregator
type Source interface {
	// OrderRecords returns orders (cancelled included) dated within period and scope.
	OrderRecords(ctx context.Context, period Period, scope Scope) ([]OrderRecord, error)
	StoreNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ProductNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Compute fetches records from src and aggregates them. It never fails: any
// source error yields Unavailable carrying EmptyDashboard.
func Compute(ctx context.Context, src Source, q Query) Result[Dashboard] {
	q = q.normalized()
	w := WindowsFor(q.AsOf, q.TrendDays)

	records, err := src.OrderRecords(ctx, w.Span(), q.Scope)
	if err != nil {
		return Unavailable[Dashboard]{Reason: err, Empty: EmptyDashboard()}
	}

	dash := Aggregate(records, q)

	stores, products, err := resolveRankings(ctx, src, dash.StoreRanking, dash.ProductRanking)
	if err != nil {
		return Unavailable[Dashboard]{Reason: err, Empty: EmptyDashboard()}
	}
	dash.StoreRanking = stores
	dash.ProductRanking = products

	return Ready[Dashboard]{Data: dash}
}

// resolveRankings looks up store and product names concurrently
func resolveRankings(ctx context.Context, src Source, stores, products []RankingEntry) ([]RankingEntry, []RankingEntry, error) {
	var storeNames, productNames map[uuid.UUID]string

	g, gctx := errgroup.WithContext(ctx)
	if len(stores) > 0 {
		g.Go(func() error {
			var err error
			storeNames, err = src.StoreNames(gctx, RankingIDs(stores))
			return err
		})
	}
	if len(products) > 0 {
		g.Go(func() error {
			var err error
			productNames, err = src.ProductNames(gctx, RankingIDs(products))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return ResolveNames(stores, storeNames), ResolveNames(products, productNames), nil
}
