package checkout_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/gin-gonic/gin"
)

// respondCheckoutError maps flow errors onto HTTP statuses.
func respondCheckoutError(c *gin.Context, err error) {
	var validation *checkout.ValidationError
	var unpaid *checkout.PaymentStatusError
	var unrecorded *checkout.OrderNotRecordedError
	var received *checkout.PaymentReceivedError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Your cart is empty"))
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, models.ErrorResponseWithData(c, "Please check your shipping details", gin.H{
			"fields": validation.Fields,
		}))
	case errors.As(err, &received):
		c.JSON(http.StatusConflict, models.ErrorResponseWithData(c,
			"Your payment has already been received, please complete your order",
			gin.H{"payment_intent_id": received.PaymentIntentID, "next": "/api/v1/checkout/complete"},
		))
	case errors.Is(err, checkout.ErrInvalidPhase):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Checkout is not at this step, please reload"))
	case errors.As(err, &unpaid):
		c.JSON(http.StatusPaymentRequired, models.ErrorResponseWithData(c, "Payment has not been confirmed", gin.H{
			"payment_intent_id": unpaid.PaymentIntentID,
			"status":            unpaid.Status,
		}))
	case errors.As(err, &unrecorded):
		c.JSON(http.StatusBadGateway, models.ErrorResponseWithData(c,
			"Payment received but we could not record your order. Please contact support quoting "+unrecorded.PaymentIntentID,
			gin.H{"payment_intent_id": unrecorded.PaymentIntentID},
		))
	case errors.Is(err, payments.ErrAmountOutOfRange):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Order total is outside the amount we can take online"))
	case errors.Is(err, payments.ErrGateway):
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Payment provider is unavailable, please try again"))
	default:
		log.Printf("[checkout] ❌ %s: %v", middleware.CartID(c), err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Checkout failed"))
	}
}

// GetCheckout godoc
// @Summary Current checkout state
// @Description Returns the checkout session for the visitor's cart. A new session starts at the shipping step.
// @Tags Storefront - Checkout
// @Produce json
// @Success 200 {object} models.ApiResponse{data=checkout.Session}
// @Failure 500 {object} models.ApiResponse
// @Router /checkout [get]
func GetCheckout(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := flow.Session(c.Request.Context(), middleware.CartID(c))
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout retrieved", s))
	}
}

// SubmitShipping godoc
// @Summary Submit shipping details
// @Description Validates the shipping form and moves checkout to the payment step. Can be called again from the payment step to edit details.
// @Tags Storefront - Checkout
// @Accept json
// @Produce json
// @Param shipping body checkout.ShippingInfo true "Shipping details"
// @Success 200 {object} models.ApiResponse{data=checkout.Session}
// @Failure 400 {object} models.ApiResponse
// @Router /checkout/shipping [post]
func SubmitShipping(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var info checkout.ShippingInfo
		if err := c.ShouldBindJSON(&info); err != nil {
			if fields := bindingFields(err); len(fields) > 0 {
				respondCheckoutError(c, &checkout.ValidationError{Fields: fields})
				return
			}
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}

		s, err := flow.SubmitShipping(c.Request.Context(), middleware.CartID(c), info)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Shipping details saved", s))
	}
}

// StartPayment godoc
// @Summary Start card payment
// @Description Creates (or reuses) the payment intent for the cart total and returns the client secret for the card form.
// @Tags Storefront - Checkout
// @Produce json
// @Success 200 {object} models.ApiResponse{data=checkout.PaymentStart}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /checkout/payment [post]
func StartPayment(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, err := flow.StartPayment(c.Request.Context(), middleware.CartID(c))
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Payment ready", start))
	}
}

// CompleteCheckout godoc
// @Summary Complete checkout
// @Description Confirms the payment with the processor and records the order. The cart is cleared on success.
// @Tags Storefront - Checkout
// @Produce json
// @Success 201 {object} models.ApiResponse{data=models.OrderTrackingResponse}
// @Failure 402 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /checkout/complete [post]
func CompleteCheckout(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := flow.Complete(c.Request.Context(), middleware.CartID(c))
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed", order.ToTracking()))
	}
}
