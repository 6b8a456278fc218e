package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/pkg/pagination"
)

// DailyReportRepository defines the interface for daily report data operations
type DailyReportRepository interface {
	Create(ctx context.Context, report *entity.DailyReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyReport, error)
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*entity.DailyReport, error)
	Update(ctx context.Context, report *entity.DailyReport) error
	List(ctx context.Context, params *DailyReportFilterParams) ([]entity.DailyReport, int64, error)
}

// DailyReportFilterParams contains filtering parameters for report queries
type DailyReportFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Status     *enum.ReportStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
