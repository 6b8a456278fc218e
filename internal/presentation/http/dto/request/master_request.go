package request

import (
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CreateUserRequest represents a user registration request
type CreateUserRequest struct {
	Email      string        `json:"email" binding:"required,email"`
	Name       string        `json:"name" binding:"required,min=1,max=100"`
	Role       enum.UserRole `json:"role"`
	EmployeeID *string       `json:"employee_id" binding:"omitempty,max=50"`
	Phone      *string       `json:"phone" binding:"omitempty,max=20"`
	Department *string       `json:"department" binding:"omitempty,max=100"`
}

// StoreRequest is used for both store creation and partial updates
type StoreRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=255"`
	NameKana      *string  `json:"name_kana" binding:"omitempty,max=255"`
	StoreCode     *string  `json:"store_code" binding:"omitempty,max=50"`
	PostalCode    *string  `json:"postal_code" binding:"omitempty,max=10"`
	Address       *string  `json:"address"`
	Phone         *string  `json:"phone" binding:"omitempty,max=20"`
	BusinessType  *string  `json:"business_type" binding:"omitempty,max=50"`
	ContactPerson *string  `json:"contact_person" binding:"omitempty,max=100"`
	Latitude      *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude     *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Notes         *string  `json:"notes"`
	IsActive      *bool    `json:"is_active"`
	CreatedBy     *string  `json:"created_by" binding:"omitempty,uuid"`
}

// ProductRequest is used for both product creation and partial updates
type ProductRequest struct {
	ProductCode *string          `json:"product_code" binding:"omitempty,max=50"`
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	Description *string          `json:"description"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=50"`
	IsActive    *bool            `json:"is_active"`
}
