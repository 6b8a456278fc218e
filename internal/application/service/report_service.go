package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/internal/domain/sales"
	"github.com/sangkips/nippo-api/pkg/apperror"
	"github.com/sangkips/nippo-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportService handles daily reports and their approval workflow
type ReportService struct {
	reportRepo repository.DailyReportRepository
	visitRepo  repository.VisitRepository
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
	loc        *time.Location
	now        func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.DailyReportRepository,
	visitRepo repository.VisitRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	loc *time.Location,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		reportRepo: reportRepo,
		visitRepo:  visitRepo,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// CreateReportInput represents the create report input
type CreateReportInput struct {
	UserID         uuid.UUID
	ReportDate     time.Time
	WorkStartTime  *time.Time
	WorkEndTime    *time.Time
	TravelDistance *decimal.Decimal
	TravelExpense  *decimal.Decimal
	Achievements   *string
	Reflections    *string
	TomorrowPlan   *string
	SpecialNotes   *string
}

// DayActivity is a salesperson's recorded activity on one day
type DayActivity struct {
	VisitCount       int
	OrderCount       int
	TotalSales       decimal.Decimal
	NewBusinessCount int
}

// CreateReport drafts a report for the day, filling the activity figures
// from that day's visits and orders.
func (s *ReportService) CreateReport(ctx context.Context, input *CreateReportInput) (*entity.DailyReport, error) {
	if input.ReportDate.IsZero() {
		return nil, apperror.NewFieldError("report_date", "Report date is required")
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	day := sales.Midnight(input.ReportDate.In(s.loc))

	existing, err := s.reportRepo.GetByUserAndDate(ctx, input.UserID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("A report for %s already exists", day.Format(sales.DateLayout)))
	}

	activity, err := s.Activity(ctx, input.UserID, day)
	if err != nil {
		return nil, err
	}

	report := &entity.DailyReport{
		UserID:           input.UserID,
		ReportDate:       day,
		Status:           enum.ReportStatusDraft,
		WorkStartTime:    input.WorkStartTime,
		WorkEndTime:      input.WorkEndTime,
		TravelDistance:   input.TravelDistance,
		TravelExpense:    input.TravelExpense,
		VisitCount:       activity.VisitCount,
		OrderCount:       activity.OrderCount,
		TotalSales:       activity.TotalSales,
		NewBusinessCount: activity.NewBusinessCount,
		Achievements:     input.Achievements,
		Reflections:      input.Reflections,
		TomorrowPlan:     input.TomorrowPlan,
		SpecialNotes:     input.SpecialNotes,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Activity tallies a user's visits and non-cancelled orders on day
func (s *ReportService) Activity(ctx context.Context, userID uuid.UUID, day time.Time) (*DayActivity, error) {
	var visits []entity.Visit
	var orders []entity.Order

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		visits, err = s.visitRepo.ListByUserAndDate(gctx, userID, day)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.ListByUserAndDate(gctx, userID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]sales.OrderRecord, len(orders))
	for i, o := range orders {
		records[i] = sales.OrderRecord{
			ID:          o.ID,
			Date:        o.OrderDate,
			TotalAmount: o.TotalAmount,
			Status:      o.Status,
			StoreID:     o.StoreID,
			UserID:      o.UserID,
		}
	}

	activity := &DayActivity{VisitCount: len(visits)}
	activity.OrderCount, activity.TotalSales = sales.Totals(records, sales.Scope{UserID: userID})
	for _, v := range visits {
		if v.Purpose == enum.VisitPurposeNewBusiness {
			activity.NewBusinessCount++
		}
	}
	return activity, nil
}

// GetReport retrieves a report by ID
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Report")
	}
	return report, nil
}

// ListReports lists reports, newest report date first
func (s *ReportService) ListReports(ctx context.Context, params *repository.DailyReportFilterParams) (*pagination.PaginatedResult[entity.DailyReport], error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid report status")
	}

	reports, total, err := s.reportRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(reports, pag), nil
}

// SubmitReport moves a draft or rejected report to SUBMITTED
func (s *ReportService) SubmitReport(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error) {
	return s.transition(ctx, id, enum.ReportStatusSubmitted, func(r *entity.DailyReport, now time.Time) {
		r.SubmittedAt = &now
		r.RejectedReason = nil
	})
}

// ApproveReport approves a submitted report on behalf of approverID
func (s *ReportService) ApproveReport(ctx context.Context, id, approverID uuid.UUID) (*entity.DailyReport, error) {
	approver, err := s.userRepo.GetByID(ctx, approverID)
	if err != nil {
		return nil, err
	}
	if approver == nil {
		return nil, apperror.NewNotFoundError("Approver")
	}

	return s.transition(ctx, id, enum.ReportStatusApproved, func(r *entity.DailyReport, now time.Time) {
		r.ApprovedBy = &approverID
		r.ApprovedAt = &now
	})
}

// RejectReport sends a submitted report back with a reason
func (s *ReportService) RejectReport(ctx context.Context, id uuid.UUID, reason string) (*entity.DailyReport, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.NewFieldError("reason", "Rejection reason is required")
	}

	return s.transition(ctx, id, enum.ReportStatusRejected, func(r *entity.DailyReport, _ time.Time) {
		r.RejectedReason = &reason
	})
}

func (s *ReportService) transition(ctx context.Context, id uuid.UUID, to enum.ReportStatus, apply func(*entity.DailyReport, time.Time)) (*entity.DailyReport, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if !report.Status.CanTransitionTo(to) {
		return nil, apperror.NewTransitionError("report", string(report.Status), string(to))
	}

	report.Status = to
	apply(report, s.now())

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
