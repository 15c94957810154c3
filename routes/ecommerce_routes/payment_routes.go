package ecommerce_routes

import (
	"log"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/payment_controller"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes mounts the unversioned /api payment endpoints. The
// webhook is skipped when no signing secret is configured.
func SetupPaymentRoutes(api *gin.RouterGroup, gateway payments.Gateway, currency string, reconciler payment_controller.IntentReconciler, webhookSecret *string) {
	api.POST("/create-payment-intent",
		middleware.RateLimiter(30, 10*time.Minute),
		payment_controller.CreatePaymentIntent(gateway, currency),
	)

	if webhookSecret == nil {
		log.Println("⚠️ Stripe webhook route not mounted")
		return
	}
	api.POST("/stripe/webhook", payment_controller.StripeWebhook(reconciler, *webhookSecret))
}
