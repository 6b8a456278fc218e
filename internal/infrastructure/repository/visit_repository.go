package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	domainRepo "github.com/sangkips/nippo-api/internal/domain/repository"
	"gorm.io/gorm"
)

type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *gorm.DB) domainRepo.VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *visitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := r.db.WithContext(ctx).
		Preload("Store").
		First(&visit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &visit, err
}

func (r *visitRepository) Update(ctx context.Context, visit *entity.Visit) error {
	return r.db.WithContext(ctx).Omit("Store", "User").Save(visit).Error
}

func (r *visitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Visit{}, "id = ?", id).Error
}

func (r *visitRepository) List(ctx context.Context, params *domainRepo.VisitFilterParams) ([]entity.Visit, int64, error) {
	var visits []entity.Visit
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Visit{}).
		Scopes(
			OwnedBy("user_id", params.UserID),
			OwnedBy("store_id", params.StoreID),
			DateRange("visit_date", params.StartDate, params.EndDate),
		)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Store").
		Order("visit_date DESC, created_at DESC").
		Find(&visits).Error

	return visits, total, err
}

func (r *visitRepository) Recent(ctx context.Context, userID *uuid.UUID, since time.Time, limit int) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy("user_id", userID)).
		Where("visit_date >= ?", since).
		Preload("Store").
		Order("visit_date DESC, created_at DESC").
		Limit(limit).
		Find(&visits).Error
	return visits, err
}

func (r *visitRepository) ListByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]entity.Visit, error) {
	var visits []entity.Visit
	start, end := dayBounds(day)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND visit_date >= ? AND visit_date < ?", userID, start, end).
		Find(&visits).Error
	return visits, err
}
