package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/pkg/apperror"
	"github.com/sangkips/nippo-api/pkg/pagination"
)

// StoreService handles store-related operations
type StoreService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo repository.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// StoreInput carries store fields for create and update. Nil fields are left unchanged on update.
type StoreInput struct {
	Name          *string
	NameKana      *string
	StoreCode     *string
	PostalCode    *string
	Address       *string
	Phone         *string
	BusinessType  *string
	ContactPerson *string
	Latitude      *float64
	Longitude     *float64
	Notes         *string
	IsActive      *bool
	CreatedBy     *uuid.UUID
}

// CreateStore creates a new store. Name and address are required.
func (s *StoreService) CreateStore(ctx context.Context, input *StoreInput) (*entity.Store, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Address == nil || strings.TrimSpace(*input.Address) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "address", Message: "Address is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	store := &entity.Store{IsActive: true, CreatedBy: input.CreatedBy}
	applyStoreInput(store, input)

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore retrieves a store by ID
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}

// ListStores lists active stores
func (s *StoreService) ListStores(ctx context.Context, params *repository.StoreFilterParams) (*pagination.PaginatedResult[entity.Store], error) {
	stores, total, err := s.storeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(stores, pag), nil
}

// UpdateStore applies the non-nil fields of input
func (s *StoreService) UpdateStore(ctx context.Context, id uuid.UUID, input *StoreInput) (*entity.Store, error) {
	store, err := s.GetStore(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "Name cannot be empty")
	}
	if input.Address != nil && strings.TrimSpace(*input.Address) == "" {
		return nil, apperror.NewFieldError("address", "Address cannot be empty")
	}

	applyStoreInput(store, input)

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// DeleteStore soft deletes a store
func (s *StoreService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStore(ctx, id); err != nil {
		return err
	}
	return s.storeRepo.Delete(ctx, id)
}

func applyStoreInput(store *entity.Store, input *StoreInput) {
	if input.Name != nil {
		store.Name = strings.TrimSpace(*input.Name)
	}
	if input.NameKana != nil {
		store.NameKana = input.NameKana
	}
	if input.StoreCode != nil {
		store.StoreCode = input.StoreCode
	}
	if input.PostalCode != nil {
		store.PostalCode = input.PostalCode
	}
	if input.Address != nil {
		store.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		store.Phone = input.Phone
	}
	if input.BusinessType != nil {
		store.BusinessType = input.BusinessType
	}
	if input.ContactPerson != nil {
		store.ContactPerson = input.ContactPerson
	}
	if input.Latitude != nil {
		store.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		store.Longitude = input.Longitude
	}
	if input.Notes != nil {
		store.Notes = input.Notes
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}
}
