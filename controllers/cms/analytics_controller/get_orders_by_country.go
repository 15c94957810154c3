package analytics_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetOrdersByCountry godoc
// @Summary Orders by shipping country
// @Description Share of settled orders per shipping country over the last `days` days (default 30).
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (1-365)" default(30)
// @Success 200 {object} models.ApiResponse{data=[]models.CountryOrders}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/countries [get]
func GetOrdersByCountry(c *gin.Context) {
	since := time.Now().UTC().AddDate(0, 0, -boundedQueryInt(c, "days", 30, 1, 365))

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var rows []models.CountryOrders
	if err := config.DB.WithContext(ctx).
		Raw(`
			SELECT ship_country AS country, COUNT(*) AS order_count
			FROM orders
			WHERE status IN ? AND paid_at >= ?
			GROUP BY ship_country
			ORDER BY order_count DESC
		`, models.SettledOrderStatuses, since).
		Scan(&rows).Error; err != nil {
		log.Printf("[admin.analytics-countries] ❌ query: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders by country"))
		return
	}

	var total int64
	for _, r := range rows {
		total += r.OrderCount
	}
	for i := range rows {
		rows[i].Percentage = percentOf(decimal.NewFromInt(rows[i].OrderCount), decimal.NewFromInt(total))
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Orders by country retrieved successfully", rows))
}
