package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order represents a sales order taken at a store
type Order struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber     string             `gorm:"size:50;unique;not null" json:"order_number"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	StoreID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"store_id"`
	VisitID         *uuid.UUID         `gorm:"type:uuid;index" json:"visit_id,omitempty"`
	OrderDate       time.Time          `gorm:"type:timestamptz;not null;index" json:"order_date"`
	Status          enum.OrderStatus   `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Subtotal        decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"subtotal"`
	DiscountRate    *decimal.Decimal   `gorm:"type:numeric(5,2)" json:"discount_rate,omitempty"`
	DiscountAmount  decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	TotalAmount     decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"total_amount"`
	DeliveryDate    *time.Time         `gorm:"type:date" json:"delivery_date,omitempty"`
	DeliveryAddress *string            `gorm:"type:text" json:"delivery_address,omitempty"`
	DeliveryNote    *string            `gorm:"type:text" json:"delivery_note,omitempty"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	PaymentDueDate  *time.Time         `gorm:"type:date" json:"payment_due_date,omitempty"`
	InvoiceNumber   *string            `gorm:"size:50" json:"invoice_number,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User  User        `gorm:"foreignKey:UserID" json:"-"`
	Store *Store      `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Visit *Visit      `gorm:"foreignKey:VisitID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = enum.OrderStatusPending
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents a line item in an order. Items are replaced wholesale
// when an order is edited, so they are hard deleted.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Order   Order    `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
