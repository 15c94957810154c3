package order_controller

import (
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetOrderStats godoc
// @Summary Order statistics
// @Description Per-status counts, revenue, average order value and units sold. Revenue counts every order past pending.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.OrderStats}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/orders/stats [get]
func GetOrderStats(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	q := `
		WITH
		counts AS (
			SELECT
				COUNT(*)                                        AS total,
				COUNT(*) FILTER (WHERE status = 'pending')      AS pending,
				COUNT(*) FILTER (WHERE status = 'paid')         AS paid,
				COUNT(*) FILTER (WHERE status = 'shipped')      AS shipped,
				COUNT(*) FILTER (WHERE status = 'delivered')    AS delivered,
				COALESCE(SUM(total) FILTER (WHERE status <> 'pending'), 0)::text AS revenue,
				COALESCE(AVG(total) FILTER (WHERE status <> 'pending'), 0)::text AS average
			FROM orders
		),
		units AS (
			SELECT COALESCE(SUM(oi.quantity), 0) AS sold
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status <> 'pending'
		)
		SELECT counts.*, units.sold FROM counts, units
	`

	var stats models.OrderStats
	var revenue, average string
	err := config.Pool.QueryRow(ctx, q).Scan(
		&stats.TotalOrders,
		&stats.PendingOrders,
		&stats.PaidOrders,
		&stats.ShippedOrders,
		&stats.DeliveredOrders,
		&revenue,
		&average,
		&stats.UnitsSold,
	)
	if err != nil {
		log.Printf("[admin.order.stats] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order stats"))
		return
	}

	stats.Revenue, _ = decimal.NewFromString(revenue)
	avg, _ := decimal.NewFromString(average)
	stats.AverageOrder = avg.Round(2)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order stats fetched successfully", stats))
}
