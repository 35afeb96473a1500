package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back to the first", 0, 10, 0, 10},
		{"negative size falls back to the default", 1, -5, 0, DefaultPageSize},
		{"oversized size falls back to the default", 2, 500, 10, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("partial last page rounds up", func(t *testing.T) {
		info := NewPaginationInfo(25, 1, 10)
		assert.Equal(t, 1, info.CurrentPage)
		assert.Equal(t, 3, info.TotalPages)
		assert.Equal(t, int64(25), info.TotalItems)
	})

	t.Run("empty listing keeps one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 10)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("page beyond the end is clamped", func(t *testing.T) {
		info := NewPaginationInfo(25, 9, 10)
		assert.Equal(t, 3, info.CurrentPage)
	})
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	request := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/students"+query, nil)
		return c
	}

	t.Run("defaults", func(t *testing.T) {
		page, size := ParsePaginationParams(request(""))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, size)
	})

	t.Run("explicit values", func(t *testing.T) {
		page, size := ParsePaginationParams(request("?page=4&size=25"))
		assert.Equal(t, 4, page)
		assert.Equal(t, 25, size)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		page, size := ParsePaginationParams(request("?page=abc&size=-3"))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, size)
	})
}
