package request

import (
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Dates are accepted as YYYY-MM-DD (read in the server time zone) or RFC 3339.

// VisitRequest is used for both visit creation and partial updates
type VisitRequest struct {
	UserID              string             `json:"user_id" binding:"omitempty,uuid"`
	StoreID             *string            `json:"store_id" binding:"omitempty,uuid"`
	VisitDate           *string            `json:"visit_date"`
	StartTime           *string            `json:"start_time"`
	EndTime             *string            `json:"end_time"`
	Purpose             *enum.VisitPurpose `json:"purpose"`
	Content             *string            `json:"content"`
	CompetitorInfo      *string            `json:"competitor_info"`
	StoreCondition      *string            `json:"store_condition"`
	ExpectedOrderAmount *decimal.Decimal   `json:"expected_order_amount"`
	NextVisitDate       *string            `json:"next_visit_date"`
	Latitude            *float64           `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude           *float64           `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// OrderItemRequest is one order line
type OrderItemRequest struct {
	ProductID string           `json:"product_id" binding:"required,uuid"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	UserID          string              `json:"user_id" binding:"required,uuid"`
	StoreID         string              `json:"store_id" binding:"required,uuid"`
	VisitID         *string             `json:"visit_id" binding:"omitempty,uuid"`
	OrderDate       *string             `json:"order_date"`
	Items           []OrderItemRequest  `json:"items" binding:"required,min=1,dive"`
	DiscountRate    *decimal.Decimal    `json:"discount_rate"`
	DiscountAmount  *decimal.Decimal    `json:"discount_amount"`
	DeliveryDate    *string             `json:"delivery_date"`
	DeliveryAddress *string             `json:"delivery_address"`
	DeliveryNote    *string             `json:"delivery_note"`
	PaymentMethod   *enum.PaymentMethod `json:"payment_method"`
	PaymentDueDate  *string             `json:"payment_due_date"`
	InvoiceNumber   *string             `json:"invoice_number" binding:"omitempty,max=50"`
}

// UpdateOrderRequest carries optional order changes. Sending items replaces
// every existing line.
type UpdateOrderRequest struct {
	Status          *enum.OrderStatus   `json:"status"`
	OrderDate       *string             `json:"order_date"`
	Items           []OrderItemRequest  `json:"items" binding:"omitempty,dive"`
	DiscountRate    *decimal.Decimal    `json:"discount_rate"`
	DiscountAmount  *decimal.Decimal    `json:"discount_amount"`
	DeliveryDate    *string             `json:"delivery_date"`
	DeliveryAddress *string             `json:"delivery_address"`
	DeliveryNote    *string             `json:"delivery_note"`
	PaymentMethod   *enum.PaymentMethod `json:"payment_method"`
	PaymentDueDate  *string             `json:"payment_due_date"`
	InvoiceNumber   *string             `json:"invoice_number" binding:"omitempty,max=50"`
}

// CreateReportRequest represents a daily report creation request
type CreateReportRequest struct {
	UserID         string           `json:"user_id" binding:"required,uuid"`
	ReportDate     string           `json:"report_date" binding:"required"`
	WorkStartTime  *string          `json:"work_start_time"`
	WorkEndTime    *string          `json:"work_end_time"`
	TravelDistance *decimal.Decimal `json:"travel_distance"`
	TravelExpense  *decimal.Decimal `json:"travel_expense"`
	Achievements   *string          `json:"achievements"`
	Reflections    *string          `json:"reflections"`
	TomorrowPlan   *string          `json:"tomorrow_plan"`
	SpecialNotes   *string          `json:"special_notes"`
}

// ApproveReportRequest names the approving manager
type ApproveReportRequest struct {
	ApproverID string `json:"approver_id" binding:"required,uuid"`
}

// RejectReportRequest carries the reason a report is sent back
type RejectReportRequest struct {
	Reason string `json:"reason" binding:"required"`
}
