package part_controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultStorefrontLimit = 12

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// buildStorefrontOrderClause builds the ORDER BY clause for the catalog.
func buildStorefrontOrderClause(sortBy, sortOrder string) string {
	order := "DESC"
	if strings.ToUpper(sortOrder) == "ASC" {
		order = "ASC"
	}

	switch sortBy {
	case "price":
		return fmt.Sprintf("p.price %s, p.id", order)
	case "name":
		return fmt.Sprintf("p.name %s, p.id", order)
	case "newest":
		return fmt.Sprintf("p.created_at %s, p.id", order)
	default:
		return "p.created_at DESC, p.id"
	}
}

func optionalQuery(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

func optionalDecimal(c *gin.Context, key string) *decimal.Decimal {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

// parsePartFilter reads the catalog query string. Malformed numbers are
// ignored rather than rejected, matching how the storefront links are built.
func parsePartFilter(c *gin.Context) models.PartFilter {
	page, limit := utils.ParsePagination(c, defaultStorefrontLimit)
	f := models.PartFilter{
		Search:       optionalQuery(c, "q"),
		Category:     optionalQuery(c, "category"),
		Subcategory:  optionalQuery(c, "subcategory"),
		Availability: optionalQuery(c, "availability"),
		Make:         optionalQuery(c, "make"),
		Model:        optionalQuery(c, "model"),
		MinPrice:     optionalDecimal(c, "minPrice"),
		MaxPrice:     optionalDecimal(c, "maxPrice"),
		SortBy:       c.DefaultQuery("sortBy", "newest"),
		SortOrder:    c.DefaultQuery("sortOrder", "desc"),
		Page:         page,
		Limit:        limit,
	}
	for _, b := range c.QueryArray("brand") {
		if b = strings.TrimSpace(b); b != "" {
			f.Brands = append(f.Brands, b)
		}
	}
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		f.Year = &y
	}
	return f
}

// buildPartWhere turns a filter into a WHERE clause over parts aliased p.
func buildPartWhere(f models.PartFilter) (string, []any) {
	conditions := []string{"1 = 1"}
	args := []any{}

	if f.Search != nil {
		like := utils.ContainsPattern(*f.Search)
		conditions = append(conditions, `(p.name ILIKE ? ESCAPE '\' OR p.description ILIKE ? ESCAPE '\' OR p.brand ILIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if f.Category != nil {
		conditions = append(conditions, "LOWER(p.category) = LOWER(?)")
		args = append(args, *f.Category)
	}
	if f.Subcategory != nil {
		conditions = append(conditions, "LOWER(p.subcategory) = LOWER(?)")
		args = append(args, *f.Subcategory)
	}
	if len(f.Brands) > 0 {
		placeholders := make([]string, len(f.Brands))
		for i, b := range f.Brands {
			placeholders[i] = "LOWER(?)"
			args = append(args, b)
		}
		conditions = append(conditions, fmt.Sprintf("LOWER(p.brand) IN (%s)", strings.Join(placeholders, ",")))
	}
	if f.Availability != nil {
		switch *f.Availability {
		case models.AvailabilityInStock, "inStock":
			conditions = append(conditions, "p.availability IN ('in_stock', 'rare_find')")
		case models.AvailabilityOutOfStock, "outOfStock":
			conditions = append(conditions, "p.availability = 'out_of_stock'")
		case models.AvailabilityRareFind, "rareFind":
			conditions = append(conditions, "p.availability = 'rare_find'")
		}
	}

	if f.Make != nil || f.Model != nil || f.Year != nil {
		vehicleConds := []string{"pv.part_id = p.id"}
		if f.Make != nil {
			vehicleConds = append(vehicleConds, "LOWER(v.make) = LOWER(?)")
			args = append(args, *f.Make)
		}
		if f.Model != nil {
			vehicleConds = append(vehicleConds, "LOWER(v.model) = LOWER(?)")
			args = append(args, *f.Model)
		}
		if f.Year != nil {
			vehicleConds = append(vehicleConds, "v.year_from <= ? AND (v.year_to IS NULL OR v.year_to >= ?)")
			args = append(args, *f.Year, *f.Year)
		}
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM part_vehicles pv
			JOIN vehicles v ON v.id = pv.vehicle_id
			WHERE %s
		)`, strings.Join(vehicleConds, " AND ")))
	}

	if f.MinPrice != nil {
		conditions = append(conditions, "p.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "p.price <= ?")
		args = append(args, *f.MaxPrice)
	}

	return strings.Join(conditions, " AND "), args
}

// ─────────────────────────────────────────────────────────────
// Database fetcher (THIN RESPONSE)
// ─────────────────────────────────────────────────────────────

func fetchStorefrontPartsFromDB(ctx context.Context, f models.PartFilter) ([]models.PartSummary, int64, error) {
	whereClause, args := buildPartWhere(f)
	orderClause := buildStorefrontOrderClause(f.SortBy, f.SortOrder)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM parts p
		WHERE %s
	`, whereClause)

	var totalCount int64
	if err := config.DB.WithContext(ctx).Raw(countQuery, args...).Scan(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`
		SELECT
			p.id::text AS id,
			p.name,
			p.slug,
			p.brand,
			p.category,
			p.price,
			p.availability,
			COALESCE(p.images[1], '') AS image
		FROM parts p
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, whereClause, orderClause)

	dataArgs := append(args, f.Limit, utils.Offset(f.Page, f.Limit))

	parts := make([]models.PartSummary, 0)
	if err := config.DB.WithContext(ctx).Raw(dataQuery, dataArgs...).Scan(&parts).Error; err != nil {
		return nil, 0, err
	}
	return parts, totalCount, nil
}
