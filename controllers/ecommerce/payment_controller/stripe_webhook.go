package payment_controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const maxWebhookBody = 65536

// IntentReconciler finalises orders for intents the processor reports as
// paid. *checkout.Flow satisfies it.
type IntentReconciler interface {
	ReconcileIntent(ctx context.Context, intent *payments.Intent) (*models.Order, error)
}

// StripeWebhook godoc
// @Summary Stripe webhook
// @Description Receives signed Stripe events. A succeeded payment intent records its order if the browser never completed checkout.
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /stripe/webhook [post]
func StripeWebhook(flow IntentReconciler, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse(c, "Payload too large"))
			return
		}

		event, err := webhook.ConstructEventWithOptions(payload, c.GetHeader("Stripe-Signature"), secret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			log.Printf("[stripe.webhook] ⚠️ signature check failed: %v", err)
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid signature"))
			return
		}

		switch event.Type {
		case "payment_intent.succeeded":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Malformed payment intent"))
				return
			}
			order, err := flow.ReconcileIntent(c.Request.Context(), payments.FromStripe(&pi))
			var unrecorded *checkout.OrderNotRecordedError
			switch {
			case errors.As(err, &unrecorded):
				// Already queued for manual reconciliation.
				log.Printf("[stripe.webhook] ❌ %s: %v", pi.ID, err)
			case err != nil:
				log.Printf("[stripe.webhook] ❌ %s: %v", pi.ID, err)
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reconcile payment"))
				return
			default:
				log.Printf("[stripe.webhook] ✅ %s reconciled as %s", pi.ID, order.OrderNumber)
			}
		case "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
				reason := ""
				if pi.LastPaymentError != nil {
					reason = pi.LastPaymentError.Msg
				}
				log.Printf("[stripe.webhook] ⚠️ payment failed for %s: %s", pi.ID, reason)
			}
		default:
			log.Printf("[stripe.webhook] ignoring %s", event.Type)
		}

		c.JSON(http.StatusOK, models.SuccessResponse(c, "Received", nil))
	}
}
