package order_controller

import (
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
)

// GetOrders godoc
// @Summary List orders
// @Description Dashboard orders table, newest first.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | paid | shipped | delivered"
// @Param q query string false "Order number, customer name or email"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.OrderListRow}
// @Failure 400 {object} models.ApiResponse
// @Router /admin/orders [get]
func GetOrders(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.Order{})
	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		if !models.ValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown order status"))
			return
		}
		query = query.Where("status = ?", status)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := utils.ContainsPattern(q)
		query = query.Where(`order_number ILIKE ? ESCAPE '\' OR customer_name ILIKE ? ESCAPE '\' OR customer_email ILIKE ? ESCAPE '\'`, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count orders"))
		return
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(utils.Offset(page, limit)).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	rows := make([]models.OrderListRow, 0, len(orders))
	for i := range orders {
		rows = append(rows, orders[i].ToListRow())
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched successfully", rows, models.NewPagination(page, limit, total)))
}
