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

// ReportHandler handles daily report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	loc           *time.Location
}

// NewReportHandler creates a new report handler. Date-only values are read in loc.
func NewReportHandler(reportService *service.ReportService, loc *time.Location) *ReportHandler {
	return &ReportHandler{reportService: reportService, loc: loc}
}

// List handles listing reports
func (h *ReportHandler) List(c *gin.Context) {
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	start, end, err := queryDateRange(c, h.loc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &repository.DailyReportFilterParams{
		Pagination: pageParams(c, 20),
		UserID:     userID,
		StartDate:  start,
		EndDate:    end,
	}
	if status := c.Query("status"); status != "" {
		s := enum.ReportStatus(status)
		params.Status = &s
	}

	result, err := h.reportService.ListReports(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Reports retrieved successfully", result)
}

// Create handles drafting a daily report
func (h *ReportHandler) Create(c *gin.Context) {
	var req request.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tf := timeFields{loc: h.loc}
	reportDate := tf.parse("report_date", &req.ReportDate)
	input := &service.CreateReportInput{
		UserID:         uuid.MustParse(req.UserID),
		WorkStartTime:  tf.parse("work_start_time", req.WorkStartTime),
		WorkEndTime:    tf.parse("work_end_time", req.WorkEndTime),
		TravelDistance: req.TravelDistance,
		TravelExpense:  req.TravelExpense,
		Achievements:   req.Achievements,
		Reflections:    req.Reflections,
		TomorrowPlan:   req.TomorrowPlan,
		SpecialNotes:   req.SpecialNotes,
	}
	if tf.err != nil {
		response.BadRequest(c, tf.err.Error())
		return
	}
	if reportDate != nil {
		input.ReportDate = *reportDate
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Report created successfully", report)
}

// Get handles getting a single report
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", report)
}

// Submit handles submitting a draft or rejected report
func (h *ReportHandler) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	report, err := h.reportService.SubmitReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report submitted successfully", report)
}

// Approve handles approving a submitted report
func (h *ReportHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.ApproveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.reportService.ApproveReport(c.Request.Context(), id, uuid.MustParse(req.ApproverID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report approved successfully", report)
}

// Reject handles sending a submitted report back
func (h *ReportHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.RejectReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.reportService.RejectReport(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report rejected", report)
}
