package analytics_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

const revenueMonths = 12

// GetMonthlyRevenue godoc
// @Summary Get monthly revenue for last 12 months
// @Description Revenue and order count per month for paid, shipped and delivered orders. Months without sales are returned as zero.
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.MonthlyRevenueData}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/monthly-revenue [get]
func GetMonthlyRevenue(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(revenueMonths - 1), 0)

	var rows []models.MonthlyRevenueData
	if err := config.DB.WithContext(ctx).
		Raw(`
			SELECT
				TO_CHAR(date_trunc('month', paid_at), 'YYYY-MM') AS month,
				COUNT(*) AS orders,
				COALESCE(SUM(total), 0) AS revenue
			FROM orders
			WHERE status IN ? AND paid_at >= ?
			GROUP BY date_trunc('month', paid_at)
			ORDER BY date_trunc('month', paid_at) ASC
		`, models.SettledOrderStatuses, since).
		Scan(&rows).Error; err != nil {
		log.Printf("[admin.analytics-monthly-revenue] ❌ query: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch monthly revenue"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Monthly revenue retrieved successfully", fillMonths(rows, now, revenueMonths)))
}
