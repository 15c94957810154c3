package order_controller

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
)

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Forward-only: pending → paid → shipped → delivered. Shipped and delivered email the customer.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))

	order, ok := loadOrder(c)
	if !ok {
		return
	}

	if !models.CanTransitionOrder(order.Status, req.Status) {
		log.Printf("[admin.order.update] rejected %s → %s for %s", order.Status, req.Status, order.OrderNumber)
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Cannot move an order from "+order.Status+" to "+req.Status))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	applyStatus(order, req.Status, time.Now().UTC())
	if err := config.DB.WithContext(ctx).Model(order).Select("status", "paid_at", "shipped_at", "delivered_at").Updates(order).Error; err != nil {
		log.Printf("[admin.order.update] ERROR update failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order"))
		return
	}
	log.Printf("[admin.order.update] success order_number=%s status=%s", order.OrderNumber, order.Status)

	if feed != nil {
		feed.Broadcast(services.OrderEvent{Type: services.OrderEventStatusChanged, Order: order.ToListRow()})
	}
	if mailer != nil {
		go func(o models.Order) {
			mailCtx, mailCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer mailCancel()
			if err := mailer.SendStatusUpdate(mailCtx, &o); err != nil {
				log.Printf("[admin.order.update] ⚠️ status email for %s failed: %v", o.OrderNumber, err)
			}
		}(*order)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order updated successfully", order))
}
