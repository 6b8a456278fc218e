package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyReport is a salesperson's end-of-day report (nippo)
type DailyReport struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_daily_reports_user_date" json:"user_id"`
	ReportDate       time.Time         `gorm:"type:date;not null;uniqueIndex:idx_daily_reports_user_date" json:"report_date"`
	Status           enum.ReportStatus `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	WorkStartTime    *time.Time        `json:"work_start_time,omitempty"`
	WorkEndTime      *time.Time        `json:"work_end_time,omitempty"`
	TravelDistance   *decimal.Decimal  `gorm:"type:numeric(8,1)" json:"travel_distance,omitempty"`
	TravelExpense    *decimal.Decimal  `gorm:"type:numeric(14,2)" json:"travel_expense,omitempty"`
	VisitCount       int               `gorm:"not null;default:0" json:"visit_count"`
	OrderCount       int               `gorm:"not null;default:0" json:"order_count"`
	TotalSales       decimal.Decimal   `gorm:"type:numeric(14,2);not null;default:0" json:"total_sales"`
	NewBusinessCount int               `gorm:"not null;default:0" json:"new_business_count"`
	Achievements     *string           `gorm:"type:text" json:"achievements,omitempty"`
	Reflections      *string           `gorm:"type:text" json:"reflections,omitempty"`
	TomorrowPlan     *string           `gorm:"type:text" json:"tomorrow_plan,omitempty"`
	SpecialNotes     *string           `gorm:"type:text" json:"special_notes,omitempty"`
	SubmittedAt      *time.Time        `json:"submitted_at,omitempty"`
	ApprovedBy       *uuid.UUID        `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt       *time.Time        `json:"approved_at,omitempty"`
	RejectedReason   *string           `gorm:"type:text" json:"rejected_reason,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate generates a UUID before creating a new report
func (r *DailyReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = enum.ReportStatusDraft
	}
	return nil
}

// TableName returns the table name for the DailyReport model
func (DailyReport) TableName() string {
	return "daily_reports"
}
