package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/nippo-api/internal/application/service"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/request"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/response"
)

// StoreHandler handles store-related HTTP requests
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List handles listing active stores
func (h *StoreHandler) List(c *gin.Context) {
	params := &repository.StoreFilterParams{
		Pagination:   pageParams(c, 50),
		Search:       c.Query("search"),
		BusinessType: c.Query("business_type"),
	}

	result, err := h.storeService.ListStores(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Stores retrieved successfully", result)
}

// Create handles creating a store
func (h *StoreHandler) Create(c *gin.Context) {
	var req request.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), storeInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store created successfully", store)
}

// Get handles getting a single store
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	store, err := h.storeService.GetStore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store retrieved successfully", store)
}

// Update handles updating a store
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), id, storeInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store updated successfully", store)
}

// Delete handles deleting a store
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.storeService.DeleteStore(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func storeInput(req *request.StoreRequest) *service.StoreInput {
	return &service.StoreInput{
		Name:          req.Name,
		NameKana:      req.NameKana,
		StoreCode:     req.StoreCode,
		PostalCode:    req.PostalCode,
		Address:       req.Address,
		Phone:         req.Phone,
		BusinessType:  req.BusinessType,
		ContactPerson: req.ContactPerson,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Notes:         req.Notes,
		IsActive:      req.IsActive,
		CreatedBy:     optionalUUID(req.CreatedBy),
	}
}
