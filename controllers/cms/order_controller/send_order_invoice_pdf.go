package order_controller

import (
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

// SendOrderInvoice godoc
// @Summary Email the invoice to the customer
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /admin/orders/{id}/send-invoice [post]
func SendOrderInvoice(c *gin.Context) {
	if mailer == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Email is not configured"))
		return
	}

	order, ok := loadOrder(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	if err := mailer.SendInvoice(ctx, order); err != nil {
		log.Printf("[order.send-invoice] ❌ %s: %v", order.OrderNumber, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to send invoice"))
		return
	}

	log.Printf("[order.send-invoice] ✅ invoice %s sent to %s", order.OrderNumber, order.CustomerEmail)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Invoice sent", gin.H{
		"order_number": order.OrderNumber,
		"email":        order.CustomerEmail,
	}))
}
