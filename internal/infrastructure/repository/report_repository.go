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

type dailyReportRepository struct {
	db *gorm.DB
}

// NewDailyReportRepository creates a new daily report repository
func NewDailyReportRepository(db *gorm.DB) domainRepo.DailyReportRepository {
	return &dailyReportRepository{db: db}
}

func (r *dailyReportRepository) Create(ctx context.Context, report *entity.DailyReport) error {
	return r.db.WithContext(ctx).Omit("User").Create(report).Error
}

func (r *dailyReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error) {
	var report entity.DailyReport
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}

func (r *dailyReportRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*entity.DailyReport, error) {
	var report entity.DailyReport
	start, end := dayBounds(day)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND report_date >= ? AND report_date < ?", userID, start, end).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}

func (r *dailyReportRepository) Update(ctx context.Context, report *entity.DailyReport) error {
	return r.db.WithContext(ctx).Omit("User").Save(report).Error
}

func (r *dailyReportRepository) List(ctx context.Context, params *domainRepo.DailyReportFilterParams) ([]entity.DailyReport, int64, error) {
	var reports []entity.DailyReport
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DailyReport{}).
		Scopes(
			OwnedBy("user_id", params.UserID),
			DateRange("report_date", params.StartDate, params.EndDate),
		)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("User").
		Order("report_date DESC").
		Find(&reports).Error

	return reports, total, err
}
