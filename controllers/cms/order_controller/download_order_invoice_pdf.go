package order_controller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
)

// DownloadOrderInvoice godoc
// @Summary Download invoice PDF
// @Tags Admin - Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Success 200 {file} file
// @Failure 404 {object} models.ApiResponse
// @Router /admin/orders/{id}/invoice [get]
func DownloadOrderInvoice(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}

	pdfBytes, err := services.GenerateInvoicePDF(order, business)
	if err != nil {
		log.Printf("[order.download-invoice] failed to render PDF: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate invoice"))
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", order.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, filename, filename))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)

	log.Printf("[order.download-invoice] invoice PDF downloaded for order %s", order.OrderNumber)
}
