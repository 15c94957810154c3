package admin_controller

import (
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
)

// GetAdmins godoc
// @Summary List admins
// @Description Staff accounts, newest first. Super admin only.
// @Tags Admin - Management
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 20, max: 100)"
// @Success 200 {object} models.ApiResponse{data=[]models.AdminResponse}
// @Failure 403 {object} models.ApiResponse "Forbidden"
// @Router /admin/admins [get]
func GetAdmins(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	baseQuery := config.DB.WithContext(ctx).Model(&models.Admin{})

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		log.Printf("[admin.list] failed to count admins: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	var admins []models.Admin
	if err := baseQuery.Order("created_at DESC").Limit(limit).Offset(utils.Offset(page, limit)).Find(&admins).Error; err != nil {
		log.Printf("[admin.list] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	responses := make([]models.AdminResponse, len(admins))
	for i := range admins {
		responses[i] = admins[i].ToResponse()
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Admins fetched successfully", responses, models.NewPagination(page, limit, total)))
}
