package part_controller

import (
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
)

// GetParts godoc
// @Summary List parts
// @Description Dashboard parts table with optional category and availability filters.
// @Tags CMS - Parts
// @Produce json
// @Param category query string false "Category"
// @Param availability query string false "in_stock | out_of_stock | rare_find"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/parts [get]
func GetParts(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.Part{})
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if availability := c.Query("availability"); availability != "" {
		query = query.Where("availability = ?", availability)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count parts"))
		return
	}

	parts := make([]models.Part, 0)
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(utils.Offset(page, limit)).
		Find(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch parts"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Parts fetched successfully", parts, models.NewPagination(page, limit, total)))
}
