package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/pkg/apperror"
	"github.com/sangkips/nippo-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const (
	DefaultRecentVisitDays  = 7
	DefaultRecentVisitLimit = 10
)

// VisitService handles visit-related operations
type VisitService struct {
	visitRepo repository.VisitRepository
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	now       func() time.Time
}

// NewVisitService creates a new visit service
func NewVisitService(
	visitRepo repository.VisitRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
) *VisitService {
	return &VisitService{
		visitRepo: visitRepo,
		storeRepo: storeRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// VisitInput carries visit fields. Nil fields are left unchanged on update.
type VisitInput struct {
	UserID              uuid.UUID
	StoreID             *uuid.UUID
	VisitDate           *time.Time
	StartTime           *time.Time
	EndTime             *time.Time
	Purpose             *enum.VisitPurpose
	Content             *string
	CompetitorInfo      *string
	StoreCondition      *string
	ExpectedOrderAmount *decimal.Decimal
	NextVisitDate       *time.Time
	Latitude            *float64
	Longitude           *float64
}

// RecentVisits is the payload of the recent visits listing
type RecentVisits struct {
	Visits []entity.Visit `json:"visits"`
	Count  int            `json:"count"`
	Days   int            `json:"days"`
}

// CreateVisit records a visit. Store, visit date and purpose are required.
func (s *VisitService) CreateVisit(ctx context.Context, input *VisitInput) (*entity.Visit, error) {
	var fieldErrors []apperror.FieldError
	if input.UserID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "user_id", Message: "User is required"})
	}
	if input.StoreID == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "store_id", Message: "Store is required"})
	}
	if input.VisitDate == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "visit_date", Message: "Visit date is required"})
	}
	if input.Purpose == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "purpose", Message: "Purpose is required"})
	} else if !input.Purpose.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "purpose", Message: "Unknown visit purpose"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.ensureUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := s.ensureStore(ctx, *input.StoreID); err != nil {
		return nil, err
	}

	visit := &entity.Visit{UserID: input.UserID}
	applyVisitInput(visit, input)

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}
	return s.visitRepo.GetByID(ctx, visit.ID)
}

// GetVisit retrieves a visit by ID
func (s *VisitService) GetVisit(ctx context.Context, id uuid.UUID) (*entity.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}
	return visit, nil
}

// ListVisits lists visits newest first
func (s *VisitService) ListVisits(ctx context.Context, params *repository.VisitFilterParams) (*pagination.PaginatedResult[entity.Visit], error) {
	visits, total, err := s.visitRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(visits, pag), nil
}

// RecentVisits returns visits from the last days days, capped at limit
func (s *VisitService) RecentVisits(ctx context.Context, userID *uuid.UUID, days, limit int) (*RecentVisits, error) {
	if days <= 0 {
		days = DefaultRecentVisitDays
	}
	if limit <= 0 {
		limit = DefaultRecentVisitLimit
	}
	if limit > pagination.MaxPerPage {
		limit = pagination.MaxPerPage
	}

	since := s.now().AddDate(0, 0, -days)
	visits, err := s.visitRepo.Recent(ctx, userID, since, limit)
	if err != nil {
		return nil, err
	}
	if visits == nil {
		visits = []entity.Visit{}
	}

	return &RecentVisits{Visits: visits, Count: len(visits), Days: days}, nil
}

// UpdateVisit applies the non-nil fields of input
func (s *VisitService) UpdateVisit(ctx context.Context, id uuid.UUID, input *VisitInput) (*entity.Visit, error) {
	visit, err := s.GetVisit(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Purpose != nil && !input.Purpose.IsValid() {
		return nil, apperror.NewFieldError("purpose", "Unknown visit purpose")
	}
	if input.StoreID != nil && *input.StoreID != visit.StoreID {
		if err := s.ensureStore(ctx, *input.StoreID); err != nil {
			return nil, err
		}
	}

	applyVisitInput(visit, input)

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}
	return s.visitRepo.GetByID(ctx, id)
}

// DeleteVisit soft deletes a visit
func (s *VisitService) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetVisit(ctx, id); err != nil {
		return err
	}
	return s.visitRepo.Delete(ctx, id)
}

func (s *VisitService) ensureUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return nil
}

func (s *VisitService) ensureStore(ctx context.Context, id uuid.UUID) error {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if store == nil {
		return apperror.NewNotFoundError("Store")
	}
	return nil
}

func applyVisitInput(visit *entity.Visit, input *VisitInput) {
	if input.StoreID != nil {
		visit.StoreID = *input.StoreID
	}
	if input.VisitDate != nil {
		visit.VisitDate = *input.VisitDate
	}
	if input.StartTime != nil {
		visit.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		visit.EndTime = input.EndTime
	}
	if input.Purpose != nil {
		visit.Purpose = *input.Purpose
	}
	if input.Content != nil {
		visit.Content = input.Content
	}
	if input.CompetitorInfo != nil {
		visit.CompetitorInfo = input.CompetitorInfo
	}
	if input.StoreCondition != nil {
		visit.StoreCondition = input.StoreCondition
	}
	if input.ExpectedOrderAmount != nil {
		visit.ExpectedOrderAmount = input.ExpectedOrderAmount
	}
	if input.NextVisitDate != nil {
		visit.NextVisitDate = input.NextVisitDate
	}
	if input.Latitude != nil {
		visit.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		visit.Longitude = input.Longitude
	}
}
