package admin_controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetActivityLogs godoc
// @Summary Admin audit trail
// @Description Newest-first log of admin writes with before/after snapshots.
// @Tags Admin - Activity
// @Produce json
// @Security BearerAuth
// @Param resource_type query string false "part | vehicle | obd_code | solution | obd_submission | order"
// @Param resource_id query string false "Resource ID"
// @Param admin_id query string false "Admin ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLog}
// @Failure 400 {object} models.ApiResponse
// @Router /admin/activity [get]
func GetActivityLogs(c *gin.Context) {
	svc := services.GetActivityLogService()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Activity log is not available"))
		return
	}

	page, limit := utils.ParsePagination(c, 20)
	filter := services.ActivityFilter{Page: page, Limit: limit}

	if rt := strings.TrimSpace(c.Query("resource_type")); rt != "" {
		filter.ResourceType = &rt
	}
	if rid := strings.TrimSpace(c.Query("resource_id")); rid != "" {
		filter.ResourceID = &rid
	}
	if raw := c.Query("admin_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid admin_id"))
			return
		}
		filter.AdminID = &id
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	logs, total, err := svc.ListActivity(ctx, filter)
	if err != nil {
		log.Printf("[activity-log] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch activity"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Activity fetched successfully", logs, models.NewPagination(page, limit, total)))
}
