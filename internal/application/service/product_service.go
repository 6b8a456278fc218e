package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/pkg/apperror"
	"github.com/sangkips/nippo-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput carries product fields for create and update. Nil fields are left unchanged on update.
type ProductInput struct {
	ProductCode *string
	Name        *string
	Category    *string
	UnitPrice   *decimal.Decimal
	Unit        *string
	Description *string
	Barcode     *string
	IsActive    *bool
}

// CreateProduct creates a product. Code, name and a non-negative unit price are required.
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if input.ProductCode == nil || strings.TrimSpace(*input.ProductCode) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "product_code", Message: "Product code is required"})
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.UnitPrice == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "Unit price is required"})
	} else if input.UnitPrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "Unit price cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	code := strings.TrimSpace(*input.ProductCode)
	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	product := &entity.Product{IsActive: true, Unit: entity.DefaultProductUnit}
	applyProductInput(product, input)
	product.ProductCode = code

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists active products
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProduct applies the non-nil fields of input
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, apperror.NewFieldError("unit_price", "Unit price cannot be negative")
	}
	if input.ProductCode != nil {
		code := strings.TrimSpace(*input.ProductCode)
		if code != product.ProductCode {
			existing, err := s.productRepo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.NewConflictError("Product code already exists")
			}
		}
	}

	applyProductInput(product, input)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func applyProductInput(product *entity.Product, input *ProductInput) {
	if input.ProductCode != nil {
		product.ProductCode = strings.TrimSpace(*input.ProductCode)
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.Unit != nil && *input.Unit != "" {
		product.Unit = *input.Unit
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}
