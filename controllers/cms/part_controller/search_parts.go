package part_controller

import (
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
)

// SearchParts godoc
// @Summary Search parts
// @Description Match name, brand, part number or slug.
// @Tags CMS - Parts
// @Produce json
// @Param query query string true "Search text"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /admin/parts/search [get]
func SearchParts(c *gin.Context) {
	term := strings.TrimSpace(c.Query("query"))
	if term == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Search query is required"))
		return
	}
	page, limit := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	like := utils.ContainsPattern(term)
	query := config.DB.WithContext(ctx).Model(&models.Part{}).
		Where(`name ILIKE ? ESCAPE '\' OR brand ILIKE ? ESCAPE '\' OR part_number ILIKE ? ESCAPE '\' OR slug ILIKE ? ESCAPE '\'`, like, like, like, like)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to search parts"))
		return
	}

	parts := make([]models.Part, 0)
	if err := query.Order("name ASC").Limit(limit).Offset(utils.Offset(page, limit)).Find(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to search parts"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Search completed", parts, models.NewPagination(page, limit, total)))
}
