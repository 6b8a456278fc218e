package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies offset and limit from validated page params
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// OwnedBy filters on a uuid column when id is set; nil means all records
func OwnedBy(column string, id *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil || *id == uuid.Nil {
			return db
		}
		return db.Where(column+" = ?", *id)
	}
}

// DateRange bounds column by inclusive start and end; either side may be nil
func DateRange(column string, start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where(column+" >= ?", *start)
		}
		if end != nil {
			db = db.Where(column+" <= ?", *end)
		}
		return db
	}
}

// ActiveOnly keeps rows whose is_active flag is set
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// Search matches term case-insensitively against any of columns
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = col + " ILIKE ?"
			args[i] = "%" + term + "%"
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// dayBounds returns [midnight, next midnight) for day in its own location
func dayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
