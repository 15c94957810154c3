package obd_controller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is nginx's 499, used when a newer search from
// the same visitor replaced this one.
const statusClientClosedRequest = 499

var knownSystems = map[string]bool{
	"powertrain": true,
	"body":       true,
	"chassis":    true,
	"network":    true,
}

var knownSeverities = map[string]bool{
	models.SeverityLow:    true,
	models.SeverityMedium: true,
	models.SeverityHigh:   true,
}

// buildCodeSearch matches code-shaped queries by prefix and anything else
// against description and common causes.
func buildCodeSearch(q, severity, system string) (string, []any) {
	conditions := []string{"1 = 1"}
	args := []any{}

	q = strings.TrimSpace(q)
	switch {
	case q == "":
	case utils.IsOBDCodePrefix(q):
		conditions = append(conditions, "c.code LIKE ?")
		args = append(args, strings.ToUpper(q)+"%")
	default:
		like := utils.ContainsPattern(q)
		conditions = append(conditions, `(c.description ILIKE ? ESCAPE '\' OR c.common_causes::text ILIKE ? ESCAPE '\')`)
		args = append(args, like, like)
	}

	if severity = strings.ToLower(severity); knownSeverities[severity] {
		conditions = append(conditions, "c.severity = ?")
		args = append(args, severity)
	}
	if system = strings.ToLower(system); knownSystems[system] {
		conditions = append(conditions, "c.system = ?")
		args = append(args, system)
	}

	return strings.Join(conditions, " AND "), args
}

// searchKey identifies the visitor whose older searches a new one replaces.
func searchKey(c *gin.Context) string {
	if id := middleware.CartID(c); id != "" {
		return "cart:" + id
	}
	return "ip:" + c.ClientIP()
}

// SearchOBDCodes godoc
// @Summary Search OBD codes
// @Description Prefix match for code-shaped queries (P03, p0301), text match otherwise. A newer search from the same visitor cancels this one.
// @Tags Storefront - Diagnostics
// @Produce json
// @Param q query string false "Code or symptom text"
// @Param severity query string false "low | medium | high"
// @Param system query string false "powertrain | body | chassis | network"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 499 {object} models.ApiResponse "Superseded by a newer search"
// @Router /obd-codes/search [get]
func SearchOBDCodes(searches *services.LatestOnly) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := utils.ParsePagination(c, 20)
		where, args := buildCodeSearch(c.Query("q"), c.Query("severity"), c.Query("system"))

		searchCtx, done := searches.Begin(c.Request.Context(), searchKey(c))
		defer done()

		ctx, cancel := config.WithRequestTimeout(searchCtx)
		defer cancel()

		results, total, err := fetchCodeSummaries(ctx, where, args, page, limit)
		if err != nil {
			if services.Superseded(searchCtx) {
				c.JSON(statusClientClosedRequest, models.ErrorResponse(c, "Search superseded by a newer query"))
				return
			}
			if ctx.Err() != nil && c.Request.Context().Err() != nil {
				return
			}
			log.Printf("[obd.search] ❌ %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Search failed"))
			return
		}

		c.JSON(http.StatusOK, models.PaginatedResponse(c, "Codes fetched successfully", results, models.NewPagination(page, limit, total)))
	}
}

func fetchCodeSummaries(ctx context.Context, where string, args []any, page, limit int) ([]models.OBDCodeSummary, int64, error) {
	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM obd_codes c WHERE %s`, where)
	if err := config.DB.WithContext(ctx).Raw(countQuery, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`
		SELECT
			c.id,
			c.code,
			c.system,
			c.description,
			c.severity,
			(SELECT COUNT(*) FROM solutions s WHERE s.obd_code_id = c.id) AS solution_count
		FROM obd_codes c
		WHERE %s
		ORDER BY c.code ASC
		LIMIT ? OFFSET ?
	`, where)

	results := make([]models.OBDCodeSummary, 0)
	dataArgs := append(args, limit, utils.Offset(page, limit))
	if err := config.DB.WithContext(ctx).Raw(dataQuery, dataArgs...).Scan(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
