package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/internal/domain/pricing"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/pkg/apperror"
	"github.com/sangkips/nippo-api/pkg/pagination"
	"github.com/sangkips/nippo-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// discountRateScale matches the numeric(5,2) discount_rate column
const discountRateScale = 2

var maxDiscountRate = decimal.NewFromInt(100)

// OrderService handles order-related operations
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	calculator  *pricing.Calculator
	dashboards  DashboardInvalidator
	now         func() time.Time
}

// DashboardInvalidator evicts cached dashboards after order writes
type DashboardInvalidator interface {
	InvalidateDashboards(ctx context.Context) error
}

// WithDashboardInvalidator makes order writes evict cached dashboards
func (s *OrderService) WithDashboardInvalidator(inv DashboardInvalidator) *OrderService {
	s.dashboards = inv
	return s
}

// evictDashboards ignores eviction errors; the cache TTL bounds staleness.
func (s *OrderService) evictDashboards(ctx context.Context) {
	if s.dashboards != nil {
		_ = s.dashboards.InvalidateDashboards(ctx)
	}
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	calculator *pricing.Calculator,
) *OrderService {
	if calculator == nil {
		calculator = pricing.NewCalculator(0)
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		calculator:  calculator,
		now:         time.Now,
	}
}

// OrderItemInput represents an item in an order. A nil UnitPrice falls back
// to the product's list price.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID          uuid.UUID
	StoreID         uuid.UUID
	VisitID         *uuid.UUID
	OrderDate       *time.Time
	Items           []OrderItemInput
	DiscountRate    *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	DeliveryDate    *time.Time
	DeliveryAddress *string
	DeliveryNote    *string
	PaymentMethod   *enum.PaymentMethod
	PaymentDueDate  *time.Time
	InvoiceNumber   *string
}

// UpdateOrderInput carries optional order changes. Non-nil Items replace the
// existing lines and the order is re-priced from scratch.
type UpdateOrderInput struct {
	Status          *enum.OrderStatus
	OrderDate       *time.Time
	Items           []OrderItemInput
	DiscountRate    *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	DeliveryDate    *time.Time
	DeliveryAddress *string
	DeliveryNote    *string
	PaymentMethod   *enum.PaymentMethod
	PaymentDueDate  *time.Time
	InvoiceNumber   *string
}

// CreateOrder prices and persists a new order with its items
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "At least one item is required")
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewFieldError("payment_method", "Unknown payment method")
	}
	if err := validateMoney(input.Items, input.DiscountRate, input.DiscountAmount); err != nil {
		return nil, err
	}

	store, err := s.storeRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	items, lines, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	discount := pricing.Discount{Rate: input.DiscountRate, Amount: input.DiscountAmount}
	priced := s.calculator.Price(lines, discount)

	now := s.now()
	orderDate := now
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &entity.Order{
		OrderNumber:     utils.GenerateOrderNumber(now),
		UserID:          input.UserID,
		StoreID:         input.StoreID,
		VisitID:         input.VisitID,
		OrderDate:       orderDate,
		Status:          enum.OrderStatusPending,
		DiscountRate:    input.DiscountRate,
		DeliveryDate:    input.DeliveryDate,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryNote:    input.DeliveryNote,
		PaymentDueDate:  input.PaymentDueDate,
		InvoiceNumber:   input.InvoiceNumber,
		Items:           items,
	}
	if input.PaymentMethod != nil {
		order.PaymentMethod = *input.PaymentMethod
	}
	if input.DiscountAmount != nil {
		order.DiscountRate = nil
	}
	applyPricing(order, priced)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.evictDashboards(ctx)

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// GetOrder retrieves an order with its store and items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering, newest order date first
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrder applies input to an order. Replacing items or changing the
// discount re-prices the order; other edits leave money fields untouched.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "Unknown order status")
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewFieldError("payment_method", "Unknown payment method")
	}

	replaceItems := input.Items != nil
	discountChanged := input.DiscountRate != nil || input.DiscountAmount != nil

	if replaceItems && len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "At least one item is required")
	}
	if err := validateMoney(input.Items, input.DiscountRate, input.DiscountAmount); err != nil {
		return nil, err
	}

	var lines []pricing.LineItem
	if replaceItems {
		items, built, err := s.buildItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		order.Items = items
		lines = built
	} else if discountChanged {
		lines = lineItemsOf(order.Items)
	}

	if replaceItems || discountChanged {
		discount := pricing.Discount{Rate: input.DiscountRate, Amount: input.DiscountAmount}
		if !discountChanged {
			discount = currentDiscount(order)
		}
		order.DiscountRate = discount.Rate
		if discount.Amount != nil {
			order.DiscountRate = nil
		}
		applyPricing(order, s.calculator.Price(lines, discount))
	}

	applyOrderInput(order, input)

	if err := s.orderRepo.Update(ctx, order, replaceItems); err != nil {
		return nil, err
	}
	s.evictDashboards(ctx)
	return s.orderRepo.GetWithDetails(ctx, id)
}

// DeleteOrder soft deletes an order
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.evictDashboards(ctx)
	return nil
}

// validateMoney rejects figures the calculator would carry through but the
// order cannot hold: non-positive quantities, negative prices or amounts, and
// rates outside 0-100 or finer than the stored two decimal places.
func validateMoney(items []OrderItemInput, rate, amount *decimal.Decimal) error {
	var fieldErrors []apperror.FieldError
	for i, item := range items {
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "Quantity must be greater than 0"})
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].unit_price", i), Message: "Unit price cannot be negative"})
		}
	}
	if rate != nil {
		switch {
		case rate.IsNegative() || rate.GreaterThan(maxDiscountRate):
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_rate", Message: "Discount rate must be between 0 and 100"})
		case !rate.Equal(rate.Round(discountRateScale)):
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_rate", Message: "Discount rate allows at most 2 decimal places"})
		}
	}
	if amount != nil && amount.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_amount", Message: "Discount amount cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// buildItems resolves products in one query and snapshots names and prices
func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]entity.OrderItem, []pricing.LineItem, error) {
	productIDs := make([]uuid.UUID, len(inputs))
	for i, item := range inputs {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]entity.OrderItem, 0, len(inputs))
	lines := make([]pricing.LineItem, 0, len(inputs))
	for _, in := range inputs {
		product, ok := productMap[in.ProductID]
		if !ok {
			return nil, nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", in.ProductID))
		}

		unitPrice := product.UnitPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		line := pricing.LineItem{ProductID: in.ProductID, Quantity: in.Quantity, UnitPrice: unitPrice}
		lines = append(lines, line)
		items = append(items, entity.OrderItem{
			ProductID:   in.ProductID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			Amount:      line.Amount(),
		})
	}
	return items, lines, nil
}

// currentDiscount reconstructs the discount an order was priced with
func currentDiscount(order *entity.Order) pricing.Discount {
	if order.DiscountRate != nil {
		return pricing.RateDiscount(*order.DiscountRate)
	}
	if !order.DiscountAmount.IsZero() {
		return pricing.AmountDiscount(order.DiscountAmount)
	}
	return pricing.NoDiscount
}

func lineItemsOf(items []entity.OrderItem) []pricing.LineItem {
	lines := make([]pricing.LineItem, len(items))
	for i, item := range items {
		lines[i] = pricing.LineItem{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	return lines
}

func applyPricing(order *entity.Order, priced pricing.PricedOrder) {
	order.Subtotal = priced.Subtotal
	order.DiscountAmount = priced.DiscountAmount
	order.TotalAmount = priced.TotalAmount
}

func applyOrderInput(order *entity.Order, input *UpdateOrderInput) {
	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = input.DeliveryDate
	}
	if input.DeliveryAddress != nil {
		order.DeliveryAddress = input.DeliveryAddress
	}
	if input.DeliveryNote != nil {
		order.DeliveryNote = input.DeliveryNote
	}
	if input.PaymentMethod != nil {
		order.PaymentMethod = *input.PaymentMethod
	}
	if input.PaymentDueDate != nil {
		order.PaymentDueDate = input.PaymentDueDate
	}
	if input.InvoiceNumber != nil {
		order.InvoiceNumber = input.InvoiceNumber
	}
}
