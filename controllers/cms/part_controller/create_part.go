package part_controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	catalog_cache "github.com/bodthegod/jpperformancecars-backend/cache"
	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CreatePart godoc
// @Summary Create a part
// @Description Add a part to the catalog. Availability is derived from stock.
// @Tags CMS - Parts
// @Accept json
// @Produce json
// @Param part body models.CreatePartRequest true "Part details"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/parts [post]
func CreatePart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	var req models.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Price cannot be negative"))
		return
	}

	vehicles, ok, err := loadVehicles(ctx, config.DB, req.VehicleIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "One or more vehicle_ids do not exist"))
		return
	}

	part := models.Part{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Brand:         req.Brand,
		PartNumber:    req.PartNumber,
		Price:         req.Price.Round(2),
		StockQuantity: req.StockQuantity,
		Availability:  req.Availability,
		Images:        pq.StringArray(req.Images),
		Vehicles:      vehicles,
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(ctx, tx, req.Name, uuid.Nil)
		if err != nil {
			return err
		}
		part.Slug = slug
		return tx.Omit("Vehicles.*").Create(&part).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "A part with this slug already exists"))
			return
		}
		log.Printf("[parts.create] ❌ %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create part"))
		return
	}

	catalog_cache.Invalidate()
	c.Set(middleware.CreatedResourceIDKey, part.ID.String())
	log.Printf("[parts.create] ✅ %s (%s)", part.Name, part.ID)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Part created successfully", part))
}
