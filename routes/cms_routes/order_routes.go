package cms_routes

import (
	"github.com/bodthegod/jpperformancecars-backend/controllers/cms/analytics_controller"
	"github.com/bodthegod/jpperformancecars-backend/controllers/cms/order_controller"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes expects an authenticated admin group.
func SetupOrderRoutes(admin *gin.RouterGroup) {
	order := admin.Group("/orders")

	order.GET("", order_controller.GetOrders)
	order.GET("/stats", order_controller.GetOrderStats)
	order.GET("/live", order_controller.LiveOrders)
	order.GET("/reconciliation", order_controller.GetReconciliationQueue)
	order.GET("/:id", order_controller.GetOrderByID)
	order.GET("/:id/invoice", order_controller.DownloadOrderInvoice)

	// ════════════════════════════════════════════════════════════
	// Writes (Activity Logging)
	// ════════════════════════════════════════════════════════════
	protected := order.Group("")
	protected.Use(middleware.ActivityLoggingMiddleware())
	{
		protected.PATCH("/:id/status", order_controller.UpdateOrderStatus)
		protected.POST("/:id/send-invoice", order_controller.SendOrderInvoice)
		protected.DELETE("/reconciliation/:intentId", order_controller.ResolveReconciliation)
	}
}

// SetupAnalyticsRoutes expects an authenticated admin group.
func SetupAnalyticsRoutes(admin *gin.RouterGroup) {
	analytics := admin.Group("/analytics")
	analytics.GET("/monthly-revenue", analytics_controller.GetMonthlyRevenue)
	analytics.GET("/top-parts", analytics_controller.GetTopParts)
	analytics.GET("/countries", analytics_controller.GetOrdersByCountry)
}
