package part_controller

import (
	"context"
	"log"
	"net/http"

	catalog_cache "github.com/bodthegod/jpperformancecars-backend/cache"
	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetPartFilters godoc
// @Summary Catalog filter metadata
// @Description Categories, brands, availability counts and price range for the catalog sidebar.
// @Tags Storefront - Parts
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/parts/filters [get]
func GetPartFilters(c *gin.Context) {
	if cached, ok := catalog_cache.GetFilters(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters fetched successfully", cached))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	meta, err := loadFilterMetadata(ctx)
	if err != nil {
		log.Printf("[store.filters] ❌ %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filters"))
		return
	}
	catalog_cache.SetFilters(meta)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters fetched successfully", meta))
}

func loadFilterMetadata(ctx context.Context) (*models.PartFilterMetadata, error) {
	db := config.DB.WithContext(ctx)
	meta := &models.PartFilterMetadata{
		Categories:   make([]models.FacetCount, 0),
		Brands:       make([]models.FacetCount, 0),
		Availability: &models.AvailabilityData{},
		PriceRange:   &models.PriceRangeData{Min: decimal.Zero, Max: decimal.Zero},
	}

	if err := db.Raw(`
		SELECT category AS value, COUNT(*) AS count
		FROM parts GROUP BY category ORDER BY category
	`).Scan(&meta.Categories).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(`
		SELECT brand AS value, COUNT(*) AS count
		FROM parts GROUP BY brand ORDER BY brand
	`).Scan(&meta.Brands).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(`
		SELECT
			COUNT(*) FILTER (WHERE availability = 'in_stock')     AS in_stock,
			COUNT(*) FILTER (WHERE availability = 'out_of_stock') AS out_of_stock,
			COUNT(*) FILTER (WHERE availability = 'rare_find')    AS rare_find
		FROM parts
	`).Scan(meta.Availability).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(`
		SELECT COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max FROM parts
	`).Scan(meta.PriceRange).Error; err != nil {
		return nil, err
	}

	return meta, nil
}
