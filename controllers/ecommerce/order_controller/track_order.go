package order_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrackOrder godoc
// @Summary Look up an order
// @Description Guests track an order with its number and the email used at checkout. A mismatch returns 404 so order numbers cannot be enumerated.
// @Tags Storefront - Orders
// @Produce json
// @Param order_number query string true "Order number, e.g. JP-20261017-4F7K"
// @Param email query string true "Checkout email"
// @Success 200 {object} models.ApiResponse{data=models.OrderTrackingResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /orders/lookup [get]
func TrackOrder(c *gin.Context) {
	number := strings.ToUpper(strings.TrimSpace(c.Query("order_number")))
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if number == "" || email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "order_number and email are required"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var order models.Order
	err := config.DB.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND LOWER(customer_email) = ?", number, email).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "No order matches those details"))
		return
	}
	if err != nil {
		log.Printf("[orders.lookup] ❌ %s: %v", number, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to look up order"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order found", order.ToTracking()))
}
