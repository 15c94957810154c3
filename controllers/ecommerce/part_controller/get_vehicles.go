package part_controller

import (
	"net/http"

	catalog_cache "github.com/bodthegod/jpperformancecars-backend/cache"
	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

// GetVehicles godoc
// @Summary List vehicles
// @Description Every vehicle a part can be fitted to, for compatibility pickers.
// @Tags Storefront - Parts
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /store/vehicles [get]
func GetVehicles(c *gin.Context) {
	if cached, ok := catalog_cache.GetVehicles(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicles fetched successfully", cached))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	vehicles := make([]models.Vehicle, 0)
	if err := config.DB.WithContext(ctx).Order("make, model, year_from").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch vehicles"))
		return
	}
	catalog_cache.SetVehicles(vehicles)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicles fetched successfully", vehicles))
}
