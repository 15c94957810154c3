package payment_controller

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/gin-gonic/gin"
)

const errInvalidAmount = "Invalid amount"

// parseAmount checks presence, type, integrality and range in that order so
// each failure gets its own message.
func parseAmount(raw any) (int64, string) {
	if raw == nil {
		return 0, "amount is required"
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, "amount must be a number"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, "amount must be a whole number of minor units"
	}
	if v < float64(payments.MinAmount) || v > float64(payments.MaxAmount) {
		return 0, fmt.Sprintf("amount must be between %d and %d", payments.MinAmount, payments.MaxAmount)
	}
	return int64(v), ""
}

// CreatePaymentIntent godoc
// @Summary Create a payment intent
// @Description Creates a card payment intent for an amount in minor units (pence). The response shape is fixed for the storefront's Stripe client and does not use the standard envelope.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body models.PaymentIntentRequest true "Amount and optional currency"
// @Success 200 {object} models.PaymentIntentResponse
// @Failure 400 {object} models.PaymentErrorResponse
// @Failure 500 {object} models.PaymentErrorResponse
// @Router /create-payment-intent [post]
func CreatePaymentIntent(gateway payments.Gateway, defaultCurrency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.PaymentErrorResponse{Error: "Invalid request body", Message: err.Error()})
			return
		}

		amount, problem := parseAmount(req.Amount)
		if problem != "" {
			c.JSON(http.StatusBadRequest, models.PaymentErrorResponse{Error: errInvalidAmount, Message: problem})
			return
		}

		currency := defaultCurrency
		if req.Currency != nil {
			normalized, err := payments.NormalizeCurrency(*req.Currency)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.PaymentErrorResponse{Error: "Invalid currency", Message: "currency must be a three-letter ISO code"})
				return
			}
			currency = normalized
		}

		intent, err := gateway.CreatePaymentIntent(c.Request.Context(), payments.IntentParams{
			Amount:   amount,
			Currency: currency,
		})
		if err != nil {
			log.Printf("[payments] ❌ create intent for %d %s: %v", amount, currency, err)
			if errors.Is(err, payments.ErrAmountOutOfRange) {
				c.JSON(http.StatusBadRequest, models.PaymentErrorResponse{Error: errInvalidAmount, Message: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, models.PaymentErrorResponse{Error: "Failed to create payment intent"})
			return
		}

		c.JSON(http.StatusOK, models.PaymentIntentResponse{
			ClientSecret:    intent.ClientSecret,
			PaymentIntentID: intent.ID,
		})
	}
}
