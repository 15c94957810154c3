package admin_auth_controller

import (
	"errors"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAdminMe godoc
// @Summary Get current admin profile
// @Description Used by the dashboard to check the login on page reload.
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.AdminResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 403 {object} models.ApiResponse "Account suspended"
// @Router /admin/me [get]
func GetAdminMe(c *gin.Context) {
	adminID, _, ok := middleware.AdminFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var admin models.Admin
	if err := config.DB.WithContext(ctx).First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Admin not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	if admin.Status == models.AdminStatusSuspended {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Admin account is suspended"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Admin fetched successfully", admin.ToResponse()))
}
