package part_controller

import (
	"errors"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStorefrontPartBySlug godoc
// @Summary Get a part
// @Description Part detail page with the vehicles it fits.
// @Tags Storefront - Parts
// @Produce json
// @Param slug path string true "Part slug"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /store/parts/{slug} [get]
func GetStorefrontPartBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var part models.Part
	err := config.DB.WithContext(ctx).
		Preload("Vehicles", func(db *gorm.DB) *gorm.DB {
			return db.Order("make, model, year_from")
		}).
		First(&part, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part fetched successfully", part))
}
