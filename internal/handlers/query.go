package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adhunikethi/agritech-api/internal/repository"
)

// parseListQuery reads the common pagination, search and sort params.
// Missing, malformed or non-positive page/per_page values keep the
// ListQuery defaults so the pagination math never sees a zero divisor.
func parseListQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 {
		query.PerPage = perPage
	}
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	return query
}
