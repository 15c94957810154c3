package obd_controller

import (
	"errors"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetOBDCode godoc
// @Summary Get an OBD code
// @Description Code detail with repair solutions and the parts each one needs.
// @Tags Storefront - Diagnostics
// @Produce json
// @Param code path string true "OBD-II code, e.g. P0301"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /obd-codes/{code} [get]
func GetOBDCode(c *gin.Context) {
	code, ok := utils.NormalizeOBDCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Code must look like P0301"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var obd models.OBDCode
	err := config.DB.WithContext(ctx).
		Preload("Solutions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, created_at") }).
		Preload("Solutions.Parts").
		First(&obd, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Code "+code+" is not in our database yet"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Code fetched successfully", obd))
}
