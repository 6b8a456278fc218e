package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	domainRepo "github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/internal/domain/sales"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type salesRepository struct {
	db *gorm.DB
}

// NewSalesRepository creates a repository that feeds the sales aggregator
func NewSalesRepository(db *gorm.DB) domainRepo.SalesRepository {
	return &salesRepository{db: db}
}

type orderRow struct {
	ID          uuid.UUID
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Status      enum.OrderStatus
	StoreID     uuid.UUID
	UserID      uuid.UUID
}

type lineRow struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Category  string
	Quantity  int
	Amount    decimal.Decimal
}

// OrderRecords loads orders and their lines with two concurrent queries and
// stitches them together. Cancelled orders are returned; the aggregator drops them.
func (r *salesRepository) OrderRecords(ctx context.Context, period sales.Period, scope sales.Scope) ([]sales.OrderRecord, error) {
	var orders []orderRow
	var lines []lineRow

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&entity.Order{}).
			Select("id, order_date, total_amount, status, store_id, user_id").
			Scopes(orderWindow("order_date", period), salesScope("", scope)).
			Order("order_date ASC").
			Scan(&orders).Error
	})

	g.Go(func() error {
		return r.db.WithContext(gctx).Table("order_items AS oi").
			Select("oi.order_id, oi.product_id, COALESCE(p.category, '') AS category, oi.quantity, oi.amount").
			Joins("JOIN orders o ON o.id = oi.order_id AND o.deleted_at IS NULL").
			Joins("LEFT JOIN products p ON p.id = oi.product_id").
			Scopes(orderWindow("o.order_date", period), salesScope("o.", scope)).
			Scan(&lines).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]sales.LineRecord, len(orders))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], sales.LineRecord{
			ProductID: l.ProductID,
			Category:  l.Category,
			Quantity:  l.Quantity,
			Amount:    l.Amount,
		})
	}

	records := make([]sales.OrderRecord, len(orders))
	for i, o := range orders {
		records[i] = sales.OrderRecord{
			ID:          o.ID,
			Date:        o.OrderDate,
			TotalAmount: o.TotalAmount,
			Status:      o.Status,
			StoreID:     o.StoreID,
			UserID:      o.UserID,
			Lines:       byOrder[o.ID],
		}
	}
	return records, nil
}

// StoreNames includes soft-deleted stores so historical rankings keep their names
func (r *salesRepository) StoreNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.names(ctx, &entity.Store{}, ids)
}

func (r *salesRepository) ProductNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.names(ctx, &entity.Product{}, ids)
}

func (r *salesRepository) names(ctx context.Context, model interface{}, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	err := r.db.WithContext(ctx).Unscoped().Model(model).
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// orderWindow bounds a timestamp column by a half-open period
func orderWindow(column string, period sales.Period) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !period.From.IsZero() {
			db = db.Where(column+" >= ?", period.From)
		}
		if !period.To.IsZero() {
			db = db.Where(column+" < ?", period.To)
		}
		return db
	}
}

func salesScope(prefix string, scope sales.Scope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.UserID != uuid.Nil {
			db = db.Where(prefix+"user_id = ?", scope.UserID)
		}
		if scope.StoreID != uuid.Nil {
			db = db.Where(prefix+"store_id = ?", scope.StoreID)
		}
		return db
	}
}
