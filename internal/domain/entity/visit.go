package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Visit records a salesperson's call at a store
type Visit struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID              uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	StoreID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"store_id"`
	VisitDate           time.Time         `gorm:"type:date;not null;index" json:"visit_date"`
	StartTime           *time.Time        `json:"start_time,omitempty"`
	EndTime             *time.Time        `json:"end_time,omitempty"`
	Purpose             enum.VisitPurpose `gorm:"size:20;not null" json:"purpose"`
	Content             *string           `gorm:"type:text" json:"content,omitempty"`
	CompetitorInfo      *string           `gorm:"type:text" json:"competitor_info,omitempty"`
	StoreCondition      *string           `gorm:"type:text" json:"store_condition,omitempty"`
	ExpectedOrderAmount *decimal.Decimal  `gorm:"type:numeric(14,2)" json:"expected_order_amount,omitempty"`
	NextVisitDate       *time.Time        `gorm:"type:date" json:"next_visit_date,omitempty"`
	Latitude            *float64          `json:"latitude,omitempty"`
	Longitude           *float64          `json:"longitude,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	DeletedAt           gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Store Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

// BeforeCreate generates a UUID before creating a new visit
func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Visit model
func (Visit) TableName() string {
	return "visits"
}
