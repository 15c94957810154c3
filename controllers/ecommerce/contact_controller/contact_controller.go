package contact_controller

import (
	"context"
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

// FormSender delivers the public forms. *services.EmailJSClient satisfies it.
type FormSender interface {
	SendContact(ctx context.Context, req models.ContactRequest) error
	SendServiceRequest(ctx context.Context, req models.ServiceRequest) error
}

// SubmitContact godoc
// @Summary Contact form
// @Description Forwards a contact-form message to the workshop inbox.
// @Tags Storefront - Contact
// @Accept json
// @Produce json
// @Param message body models.ContactRequest true "Message"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /contact [post]
func SubmitContact(sender FormSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sender == nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Contact form is unavailable, please call or email us"))
			return
		}
		var req models.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}

		if err := sender.SendContact(c.Request.Context(), req); err != nil {
			log.Printf("[contact] ❌ %s: %v", req.Email, err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "We couldn't send your message, please try again"))
			return
		}
		log.Printf("[contact] ✅ message from %s", req.Email)
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Thanks, we'll be in touch shortly", nil))
	}
}

// SubmitServiceRequest godoc
// @Summary Book a service
// @Description Sends a workshop booking request.
// @Tags Storefront - Contact
// @Accept json
// @Produce json
// @Param booking body models.ServiceRequest true "Booking"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /service-requests [post]
func SubmitServiceRequest(sender FormSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sender == nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Online booking is unavailable, please call us"))
			return
		}
		var req models.ServiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}

		if err := sender.SendServiceRequest(c.Request.Context(), req); err != nil {
			log.Printf("[service-request] ❌ %s: %v", req.Email, err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "We couldn't send your booking, please try again"))
			return
		}
		log.Printf("[service-request] ✅ %s booking from %s", req.ServiceType, req.Email)
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Booking request sent, we'll confirm by email", nil))
	}
}
