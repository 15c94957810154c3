package analytics_controller

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetTopParts godoc
// @Summary Best selling parts
// @Description Top parts by revenue over the last `days` days (default 30), with each part's share of revenue in that window.
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (1-365)" default(30)
// @Param limit query int false "Number of parts (1-50)" default(6)
// @Success 200 {object} models.ApiResponse{data=[]models.TopPart}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/top-parts [get]
func GetTopParts(c *gin.Context) {
	days := boundedQueryInt(c, "days", 30, 1, 365)
	limit := boundedQueryInt(c, "limit", 6, 1, 50)
	since := time.Now().UTC().AddDate(0, 0, -days)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var window struct {
		Revenue decimal.Decimal
	}
	if err := config.DB.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(total), 0) AS revenue FROM orders WHERE status IN ? AND paid_at >= ?`,
			models.SettledOrderStatuses, since).
		Scan(&window).Error; err != nil {
		log.Printf("[admin.analytics-top-parts] ❌ total revenue: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch top parts"))
		return
	}

	var parts []models.TopPart
	if err := config.DB.WithContext(ctx).
		Raw(`
			SELECT
				oi.part_id::text AS part_id,
				MAX(oi.part_name) AS part_name,
				COUNT(DISTINCT oi.order_id) AS order_count,
				SUM(oi.quantity) AS units_sold,
				SUM(oi.line_total) AS revenue
			FROM order_items oi
			INNER JOIN orders o ON oi.order_id = o.id
			WHERE o.status IN ? AND o.paid_at >= ?
			GROUP BY oi.part_id
			ORDER BY revenue DESC
			LIMIT ?
		`, models.SettledOrderStatuses, since, limit).
		Scan(&parts).Error; err != nil {
		log.Printf("[admin.analytics-top-parts] ❌ query: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch top parts"))
		return
	}

	for i := range parts {
		parts[i].RevenuePercent = percentOf(parts[i].Revenue, window.Revenue)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Top parts retrieved successfully", parts))
}

func boundedQueryInt(c *gin.Context, key string, def, min, max int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < min {
		return def
	}
	if v > max {
		return max
	}
	return v
}
