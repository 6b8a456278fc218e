package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents a customer outlet visited by the sales team
type Store struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null;index" json:"name"`
	NameKana      *string        `gorm:"size:255" json:"name_kana,omitempty"`
	StoreCode     *string        `gorm:"size:50;unique" json:"store_code,omitempty"`
	PostalCode    *string        `gorm:"size:10" json:"postal_code,omitempty"`
	Address       string         `gorm:"type:text;not null" json:"address"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	BusinessType  *string        `gorm:"size:100;index" json:"business_type,omitempty"`
	ContactPerson *string        `gorm:"size:100" json:"contact_person,omitempty"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedBy     *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Visits []Visit `gorm:"foreignKey:StoreID" json:"-"`
	Orders []Order `gorm:"foreignKey:StoreID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new store
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}
