package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	t.Run("defaults on empty input", func(t *testing.T) {
		p := FromQuery("", "", 50)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 50, p.PerPage)
		assert.Equal(t, 0, p.Offset())
	})

	t.Run("clamps out of range values", func(t *testing.T) {
		p := FromQuery("-3", "1000", 20)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, MaxPerPage, p.PerPage)
	})

	t.Run("falls back to default page size", func(t *testing.T) {
		p := FromQuery("3", "0", 20)
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 20, p.PerPage)
		assert.Equal(t, 40, p.Offset())
	})
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 20, 45)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 20, 45)
	assert.False(t, last.HasNext)
}

func TestEmptyResult(t *testing.T) {
	res := EmptyResult[string](WithDefault(20))
	assert.NotNil(t, res.Items)
	assert.Len(t, res.Items, 0)
	assert.Equal(t, int64(0), res.Pagination.Total)
	assert.Equal(t, 0, res.Pagination.TotalPages)
}
