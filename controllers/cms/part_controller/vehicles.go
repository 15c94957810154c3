package part_controller

import (
	"errors"
	"net/http"

	catalog_cache "github.com/bodthegod/jpperformancecars-backend/cache"
	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetVehicles godoc
// @Summary List vehicles
// @Tags CMS - Vehicles
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /admin/vehicles [get]
func GetVehicles(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	vehicles := make([]models.Vehicle, 0)
	if err := config.DB.WithContext(ctx).Order("make, model, year_from").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch vehicles"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicles fetched successfully", vehicles))
}

// CreateVehicle godoc
// @Summary Create a vehicle
// @Tags CMS - Vehicles
// @Accept json
// @Produce json
// @Param vehicle body models.CreateVehicleRequest true "Vehicle"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /admin/vehicles [post]
func CreateVehicle(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	if req.YearTo != nil && *req.YearTo < req.YearFrom {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "year_to cannot be before year_from"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	vehicle := models.Vehicle{
		Make:     req.Make,
		Model:    req.Model,
		YearFrom: req.YearFrom,
		YearTo:   req.YearTo,
		Engine:   req.Engine,
	}
	if err := config.DB.WithContext(ctx).Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create vehicle"))
		return
	}

	catalog_cache.Invalidate()
	c.Set(middleware.CreatedResourceIDKey, vehicle.ID.String())
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Vehicle created successfully", vehicle))
}

// DeleteVehicle godoc
// @Summary Delete a vehicle
// @Description Removes the vehicle and its part fitments.
// @Tags CMS - Vehicles
// @Produce json
// @Param id path string true "Vehicle ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/vehicles/{id} [delete]
func DeleteVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid vehicle ID"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM part_vehicles WHERE vehicle_id = ?", vehicleID).Error; err != nil {
			return err
		}
		return tx.Delete(&vehicle).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vehicle not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete vehicle"))
		return
	}

	catalog_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicle deleted successfully", gin.H{"id": vehicleID}))
}
