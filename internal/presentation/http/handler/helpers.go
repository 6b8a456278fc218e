package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/sales"
	"github.com/sangkips/nippo-api/internal/presentation/http/dto/response"
	"github.com/sangkips/nippo-api/pkg/pagination"
	"github.com/sangkips/nippo-api/pkg/utils"
)

// pathID parses the :id parameter, answering 400 when it is not a UUID
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional UUID query parameter
func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	id, err := utils.ParseOptionalUUID(c.Query(name))
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// optionalUUID parses an optional UUID body field
func optionalUUID(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := utils.ParseOptionalUUID(*s)
	if err != nil {
		return nil
	}
	return id
}

// parseTime accepts RFC 3339 timestamps or YYYY-MM-DD dates read in loc
func parseTime(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(sales.DateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", s)
	}
	return &t, nil
}

// parseOptionalTime is parseTime for optional body fields
func parseOptionalTime(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return parseTime(*s, loc)
}

// timeFields parses several optional body fields, stopping at the first bad one
type timeFields struct {
	loc *time.Location
	err error
}

func (f *timeFields) parse(field string, s *string) *time.Time {
	if f.err != nil {
		return nil
	}
	t, err := parseOptionalTime(s, f.loc)
	if err != nil {
		f.err = fmt.Errorf("%s: %w", field, err)
	}
	return t
}

// queryDateRange reads start_date and end_date. end_date is inclusive, so a
// date-only value is extended to the end of that day.
func queryDateRange(c *gin.Context, loc *time.Location) (start, end *time.Time, err error) {
	start, err = parseTime(c.Query("start_date"), loc)
	if err != nil {
		return nil, nil, err
	}
	raw := strings.TrimSpace(c.Query("end_date"))
	end, err = parseTime(raw, loc)
	if err != nil {
		return nil, nil, err
	}
	if end != nil && len(raw) == len(sales.DateLayout) {
		e := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &e
	}
	return start, end, nil
}

// pageParams reads page and per_page, accepting limit as an alias of per_page
func pageParams(c *gin.Context, defaultPerPage int) *pagination.PaginationParams {
	perPage := c.Query("per_page")
	if perPage == "" {
		perPage = c.Query("limit")
	}
	return pagination.FromQuery(c.Query("page"), perPage, defaultPerPage)
}

// queryInt reads a positive integer query parameter, 0 when absent or invalid
func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
