package order_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

// LiveOrders godoc
// @Summary Live order feed
// @Description Websocket stream of order.paid and order.status_changed events.
// @Tags Admin - Orders
// @Security BearerAuth
// @Success 101 "Switching Protocols"
// @Failure 503 {object} models.ApiResponse
// @Router /admin/orders/live [get]
func LiveOrders(c *gin.Context) {
	if feed == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Live feed is not available"))
		return
	}
	if err := feed.ServeWS(c.Writer, c.Request); err != nil {
		log.Printf("[order.feed] upgrade failed: %v", err)
	}
}

// GetReconciliationQueue godoc
// @Summary Payments awaiting an order
// @Description Succeeded payment intents whose order write failed and needs manual follow-up.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} models.ApiResponse{data=[]checkout.ReconciliationEntry}
// @Failure 503 {object} models.ApiResponse
// @Router /admin/orders/reconciliation [get]
func GetReconciliationQueue(c *gin.Context) {
	if reconcile == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Reconciliation queue is not available"))
		return
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	entries, err := reconcile.Pending(ctx, limit)
	if err != nil {
		log.Printf("[order.reconcile] ❌ %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to read reconciliation queue"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Reconciliation queue fetched", entries))
}

// ResolveReconciliation godoc
// @Summary Dismiss a reconciliation entry
// @Description Removes a payment from the queue once it has been settled by hand, for example refunded in Stripe.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param intentId path string true "Payment intent ID"
// @Success 200 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /admin/orders/reconciliation/{intentId} [delete]
func ResolveReconciliation(c *gin.Context) {
	if reconcile == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Reconciliation queue is not available"))
		return
	}

	intentID := c.Param("intentId")
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	if err := reconcile.Resolve(ctx, intentID); err != nil {
		log.Printf("[order.reconcile] ❌ resolve %s: %v", intentID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update reconciliation queue"))
		return
	}

	log.Printf("[order.reconcile] ✅ %s resolved by admin", intentID)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Reconciliation entry resolved", nil))
}
