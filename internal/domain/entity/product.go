package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultProductUnit is the counting unit used when none is given
const DefaultProductUnit = "本"

// Product represents an item that can be ordered
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductCode string          `gorm:"size:50;unique;not null" json:"product_code"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Category    *string         `gorm:"size:100;index" json:"category,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"unit_price"`
	Unit        string          `gorm:"size:20;not null;default:'本'" json:"unit"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Barcode     *string         `gorm:"size:50;index" json:"barcode,omitempty"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Unit == "" {
		p.Unit = DefaultProductUnit
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// CategoryLabel returns the category or an empty string when unset
func (p *Product) CategoryLabel() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}
