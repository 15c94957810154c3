package admin_controller

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRevoker is implemented by services.AdminSessionService.
type SessionRevoker interface {
	DeactivateAllSessions(ctx context.Context, adminID uuid.UUID) error
}

type updateAdminStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended"`
}

// UpdateAdminStatus godoc
// @Summary Suspend or reactivate an admin
// @Description Suspending an admin also ends all of their sessions. Super admins cannot change their own status.
// @Tags Admin - Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body updateAdminStatusRequest true "active | suspended"
// @Success 200 {object} models.ApiResponse{data=models.AdminResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/admins/{id}/status [patch]
func UpdateAdminStatus(sessions SessionRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid admin ID"))
			return
		}

		var req updateAdminStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Status must be active or suspended"))
			return
		}

		actorID, actorEmail, ok := middleware.AdminFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
			return
		}
		if actorID == targetID {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "You cannot change your own status"))
			return
		}

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		var admin models.Admin
		if err := config.DB.WithContext(ctx).First(&admin, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Admin not found"))
				return
			}
			log.Printf("[admin.status] ❌ lookup %s: %v", targetID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
			return
		}

		previous := admin.Status
		if previous != req.Status {
			if err := config.DB.WithContext(ctx).Model(&admin).Update("status", req.Status).Error; err != nil {
				log.Printf("[admin.status] ❌ update %s: %v", targetID, err)
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
				return
			}
			admin.Status = req.Status
		}

		if req.Status == models.AdminStatusSuspended && sessions != nil {
			if err := sessions.DeactivateAllSessions(ctx, admin.ID); err != nil {
				log.Printf("[admin.status] ⚠️ %s suspended but sessions not revoked: %v", admin.Email, err)
			}
		}

		_ = services.LogActivitySuccess(actorID, actorEmail, models.ActionUpdatedAdminStatus,
			models.ResourceTypeAdmin, admin.ID.String(), admin.Email,
			services.CreateChanges(map[string]string{"status": previous}, map[string]string{"status": admin.Status}), c)

		c.JSON(http.StatusOK, models.SuccessResponse(c, "Admin status updated", admin.ToResponse()))
	}
}
