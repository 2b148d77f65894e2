package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 1, PerPage: 15}
	assert.Equal(t, 0, p.Offset())

	p.Page = 4
	assert.Equal(t, 45, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 35)
	assert.Equal(t, 2, pg.CurrentPage)
	assert.Equal(t, 4, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 10, 5)
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}

func TestNewPaginatedResult(t *testing.T) {
	items := []string{"a", "b"}
	result := NewPaginatedResult(items, NewPagination(1, 15, 2))
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
