package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads page and limit, falling back to defaultLimit when
// limit is missing or outside 1..100.
func ParsePagination(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

// Offset returns the row offset for page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
