package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func listContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		page     int
		perPage  int
	}{
		{"defaults when absent", "", 1, 20},
		{"explicit values", "page=3&per_page=50", 3, 50},
		{"non-numeric falls back", "page=abc&per_page=abc", 1, 20},
		{"zero falls back", "page=0&per_page=0", 1, 20},
		{"negative falls back", "page=-1&per_page=-5", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := parseListQuery(listContext(t, tt.rawQuery))
			assert.Equal(t, tt.page, query.Page)
			assert.Equal(t, tt.perPage, query.PerPage)

			// Pagination math must be safe for any parsed value
			assert.NotPanics(t, func() {
				_ = (int64(100) + int64(query.PerPage) - 1) / int64(query.PerPage)
			})
		})
	}
}

func TestParseListQueryPassesSearchAndSort(t *testing.T) {
	query := parseListQuery(listContext(t, "search_term=tomato&sort_by=name&sort_dir=desc"))
	assert.Equal(t, "tomato", query.Search)
	assert.Equal(t, "name", query.SortBy)
	assert.Equal(t, "desc", query.SortDir)
}
