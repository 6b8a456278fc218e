package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/application/service"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/request"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/response"
)

// VisitHandler handles visit-related HTTP requests
type VisitHandler struct {
	visitService *service.VisitService
	loc          *time.Location
}

// NewVisitHandler creates a new visit handler. Date-only values are read in loc.
func NewVisitHandler(visitService *service.VisitService, loc *time.Location) *VisitHandler {
	return &VisitHandler{visitService: visitService, loc: loc}
}

// List handles listing visits
func (h *VisitHandler) List(c *gin.Context) {
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

	result, err := h.visitService.ListVisits(c.Request.Context(), &repository.VisitFilterParams{
		Pagination: pageParams(c, 20),
		UserID:     userID,
		StoreID:    storeID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Visits retrieved successfully", result)
}

// Recent handles listing the latest visits within a number of days
func (h *VisitHandler) Recent(c *gin.Context) {
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.visitService.RecentVisits(c.Request.Context(), userID, queryInt(c, "days"), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recent visits retrieved successfully", result)
}

// Create handles recording a visit
func (h *VisitHandler) Create(c *gin.Context) {
	var req request.VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := h.visitInput(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visitService.CreateVisit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Visit created successfully", visit)
}

// Get handles getting a single visit
func (h *VisitHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	visit, err := h.visitService.GetVisit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Visit retrieved successfully", visit)
}

// Update handles updating a visit
func (h *VisitHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := h.visitInput(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visitService.UpdateVisit(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Visit updated successfully", visit)
}

// Delete handles deleting a visit
func (h *VisitHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.visitService.DeleteVisit(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *VisitHandler) visitInput(req *request.VisitRequest) (*service.VisitInput, error) {
	tf := timeFields{loc: h.loc}
	input := &service.VisitInput{
		StoreID:             optionalUUID(req.StoreID),
		VisitDate:           tf.parse("visit_date", req.VisitDate),
		StartTime:           tf.parse("start_time", req.StartTime),
		EndTime:             tf.parse("end_time", req.EndTime),
		Purpose:             req.Purpose,
		Content:             req.Content,
		CompetitorInfo:      req.CompetitorInfo,
		StoreCondition:      req.StoreCondition,
		ExpectedOrderAmount: req.ExpectedOrderAmount,
		NextVisitDate:       tf.parse("next_visit_date", req.NextVisitDate),
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
	}
	if tf.err != nil {
		return nil, tf.err
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, err
		}
		input.UserID = userID
	}
	return input, nil
}
