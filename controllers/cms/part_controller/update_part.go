package part_controller

import (
	"errors"
	"log"
	"net/http"

	catalog_cache "github.com/bodthegod/jpperformancecars-backend/cache"
	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UpdatePart godoc
// @Summary Update a part
// @Description Partial update. Renaming regenerates the slug; availability is recomputed from stock.
// @Tags CMS - Parts
// @Accept json
// @Produce json
// @Param id path string true "Part ID (UUID)"
// @Param part body models.UpdatePartRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/parts/{id} [patch]
func UpdatePart(c *gin.Context) {
	partID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid part ID"))
		return
	}

	var input models.UpdatePartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	if input.Price != nil && input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Price cannot be negative"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var part models.Part
	if err := config.DB.WithContext(ctx).First(&part, "id = ?", partID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	var vehicles []models.Vehicle
	if input.VehicleIDs != nil {
		var ok bool
		vehicles, ok, err = loadVehicles(ctx, config.DB, *input.VehicleIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "One or more vehicle_ids do not exist"))
			return
		}
	}

	updates := make(map[string]any)
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Subcategory != nil {
		updates["subcategory"] = *input.Subcategory
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.PartNumber != nil {
		updates["part_number"] = *input.PartNumber
	}
	if input.Price != nil {
		updates["price"] = input.Price.Round(2)
	}
	if input.Images != nil {
		updates["images"] = pq.StringArray(*input.Images)
	}

	stock := part.StockQuantity
	if input.StockQuantity != nil {
		stock = *input.StockQuantity
		updates["stock_quantity"] = stock
	}
	requested := part.Availability
	if input.Availability != nil {
		requested = *input.Availability
	}
	if input.StockQuantity != nil || input.Availability != nil {
		updates["availability"] = models.ResolveAvailability(stock, requested)
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Name != nil && *input.Name != part.Name {
			slug, err := uniqueSlug(ctx, tx, *input.Name, part.ID)
			if err != nil {
				return err
			}
			updates["name"] = *input.Name
			updates["slug"] = slug
		}
		if len(updates) > 0 {
			if err := tx.Model(&part).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.VehicleIDs != nil {
			return tx.Model(&part).Association("Vehicles").Replace(vehicles)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "A part with this slug already exists"))
			return
		}
		log.Printf("[parts.update] ❌ %s: %v", partID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update part"))
		return
	}

	if err := config.DB.WithContext(ctx).Preload("Vehicles").First(&part, "id = ?", partID).Error; err != nil {
		log.Printf("[parts.update] ⚠️ reload failed: %v", err)
	}

	catalog_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part updated successfully", part))
}
