package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order and its items in one transaction
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithDetails loads the order with its store and items
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// Update saves order fields. When replaceItems is true the existing items
	// are deleted and order.Items inserted in the same transaction.
	Update(ctx context.Context, order *entity.Order, replaceItems bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListByUserAndDate returns one user's orders on a calendar day
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]entity.Order, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	StoreID    *uuid.UUID
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
