package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/pkg/pagination"
)

// VisitRepository defines the interface for visit data operations
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Visit, error)
	Update(ctx context.Context, visit *entity.Visit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *VisitFilterParams) ([]entity.Visit, int64, error)
	// Recent returns visits dated on or after since, newest first
	Recent(ctx context.Context, userID *uuid.UUID, since time.Time, limit int) ([]entity.Visit, error)
	// ListByUserAndDate returns one user's visits on a calendar day
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]entity.Visit, error)
}

// VisitFilterParams contains filtering parameters for visit queries
type VisitFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	StoreID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
