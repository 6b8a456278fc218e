package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents a member of the sales organisation
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email      string         `gorm:"size:255;unique;not null" json:"email"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Role       enum.UserRole  `gorm:"size:20;not null;default:'SALES'" json:"role"`
	EmployeeID *string        `gorm:"size:50;unique" json:"employee_id,omitempty"`
	Phone      *string        `gorm:"size:50" json:"phone,omitempty"`
	Department *string        `gorm:"size:100" json:"department,omitempty"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Visits  []Visit       `gorm:"foreignKey:UserID" json:"-"`
	Orders  []Order       `gorm:"foreignKey:UserID" json:"-"`
	Reports []DailyReport `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = enum.UserRoleSales
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user may review other users' reports
func (u *User) IsManager() bool {
	return u.Role == enum.UserRoleAdmin || u.Role == enum.UserRoleManager
}
