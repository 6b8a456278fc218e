package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	domainRepo "github.com/sangkips/nippo-api/internal/domain/repository"
	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) domainRepo.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Store{}, "id = ?", id).Error
}

func (r *storeRepository) List(ctx context.Context, params *domainRepo.StoreFilterParams) ([]entity.Store, int64, error) {
	var stores []entity.Store
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Store{}).
		Scopes(ActiveOnly, Search(params.Search, "name", "address", "store_code"))

	if params.BusinessType != "" {
		query = query.Where("business_type = ?", params.BusinessType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("name ASC").
		Find(&stores).Error

	return stores, total, err
}
