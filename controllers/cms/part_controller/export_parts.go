package part_controller

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
)

// ExportParts godoc
// @Summary Export parts to Excel
// @Description Download the whole catalog, with fitments, as an xlsx workbook.
// @Tags CMS - Parts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} models.ApiResponse
// @Router /admin/parts/export [get]
func ExportParts(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	parts := make([]models.Part, 0)
	if err := config.DB.WithContext(ctx).Preload("Vehicles").Order("category, name").Find(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch parts"))
		return
	}

	filename := fmt.Sprintf("jp-performance-parts-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := services.WritePartsWorkbook(c.Writer, parts); err != nil {
		log.Printf("[parts.export] ❌ %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	log.Printf("[parts.export] ✅ exported %d parts", len(parts))
}
