package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/pkg/pagination"
)

// StoreRepository defines the interface for store data operations
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns active stores ordered by name
	List(ctx context.Context, params *StoreFilterParams) ([]entity.Store, int64, error)
}

// StoreFilterParams contains filtering parameters for store queries
type StoreFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	BusinessType string
}
