package part_controller

import (
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

// lowStockThreshold marks parts worth reordering on the dashboard.
const lowStockThreshold = 3

// GetPartStats godoc
// @Summary Inventory statistics
// @Tags CMS - Parts
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/parts/stats [get]
func GetPartStats(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var stats models.PartStats
	err := config.DB.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                                                   AS total_parts,
			COUNT(*) FILTER (WHERE availability = 'in_stock')          AS in_stock,
			COUNT(*) FILTER (WHERE availability = 'out_of_stock')      AS out_of_stock,
			COUNT(*) FILTER (WHERE availability = 'rare_find')         AS rare_finds,
			COUNT(*) FILTER (WHERE stock_quantity BETWEEN 1 AND ?)     AS low_stock,
			COALESCE(SUM(price * stock_quantity), 0)                   AS inventory_value,
			COUNT(DISTINCT category)                                   AS total_categories
		FROM parts
	`, lowStockThreshold).Scan(&stats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch part stats"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part stats fetched successfully", stats))
}
