package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/application/service"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/request"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	loc          *time.Location
}

// NewOrderHandler creates a new order handler. Date-only values are read in loc.
func NewOrderHandler(orderService *service.OrderService, loc *time.Location) *OrderHandler {
	return &OrderHandler{orderService: orderService, loc: loc}
}

// List handles listing orders, newest order date first
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	storeID, err := queryUUID(c, "store_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	start, end, err := queryDateRange(c, h.loc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: pageParams(c, 20),
		UserID:     userID,
		StoreID:    storeID,
		StartDate:  start,
		EndDate:    end,
	}
	if status := c.Query("status"); status != "" {
		s := enum.OrderStatus(status)
		params.Status = &s
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Orders retrieved successfully", result)
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items, err := orderItems(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tf := timeFields{loc: h.loc}
	input := &service.CreateOrderInput{
		UserID:          uuid.MustParse(req.UserID),
		StoreID:         uuid.MustParse(req.StoreID),
		VisitID:         optionalUUID(req.VisitID),
		OrderDate:       tf.parse("order_date", req.OrderDate),
		Items:           items,
		DiscountRate:    req.DiscountRate,
		DiscountAmount:  req.DiscountAmount,
		DeliveryDate:    tf.parse("delivery_date", req.DeliveryDate),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryNote:    req.DeliveryNote,
		PaymentMethod:   req.PaymentMethod,
		PaymentDueDate:  tf.parse("payment_due_date", req.PaymentDueDate),
		InvoiceNumber:   req.InvoiceNumber,
	}
	if tf.err != nil {
		response.BadRequest(c, tf.err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting an order with its store and items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles editing an order
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var items []service.OrderItemInput
	if req.Items != nil {
		var err error
		if items, err = orderItems(req.Items); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	tf := timeFields{loc: h.loc}
	input := &service.UpdateOrderInput{
		Status:          req.Status,
		OrderDate:       tf.parse("order_date", req.OrderDate),
		Items:           items,
		DiscountRate:    req.DiscountRate,
		DiscountAmount:  req.DiscountAmount,
		DeliveryDate:    tf.parse("delivery_date", req.DeliveryDate),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryNote:    req.DeliveryNote,
		PaymentMethod:   req.PaymentMethod,
		PaymentDueDate:  tf.parse("payment_due_date", req.PaymentDueDate),
		InvoiceNumber:   req.InvoiceNumber,
	}
	if tf.err != nil {
		response.BadRequest(c, tf.err.Error())
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// Delete handles deleting an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func orderItems(reqs []request.OrderItemRequest) ([]service.OrderItemInput, error) {
	items := make([]service.OrderItemInput, len(reqs))
	for i, r := range reqs {
		productID, err := uuid.Parse(r.ProductID)
		if err != nil {
			return nil, err
		}
		items[i] = service.OrderItemInput{ProductID: productID, Quantity: r.Quantity, UnitPrice: r.UnitPrice}
	}
	return items, nil
}
