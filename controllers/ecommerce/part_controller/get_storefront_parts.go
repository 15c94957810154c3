package part_controller

import (
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

// GetStorefrontParts godoc
// @Summary List catalog parts
// @Description Filtered, sorted and paginated parts for the storefront catalog.
// @Tags Storefront - Parts
// @Produce json
// @Param q query string false "Search name, description or brand"
// @Param category query string false "Category"
// @Param subcategory query string false "Subcategory"
// @Param brand query []string false "Brand (repeatable)"
// @Param availability query string false "in_stock | out_of_stock | rare_find"
// @Param make query string false "Vehicle make"
// @Param model query string false "Vehicle model"
// @Param year query int false "Vehicle year"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sortBy query string false "newest | price | name" default(newest)
// @Param sortOrder query string false "asc | desc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/parts [get]
func GetStorefrontParts(c *gin.Context) {
	f := parsePartFilter(c)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	parts, total, err := fetchStorefrontPartsFromDB(ctx, f)
	if err != nil {
		log.Printf("[store.parts] ❌ query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch parts"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Parts fetched successfully", parts, models.NewPagination(f.Page, f.Limit, total)))
}
