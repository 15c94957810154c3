package admin_auth_controller

import (
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
)

// AdminLogout godoc
// @Summary Logout admin
// @Description Deactivate the current session and clear the cookie.
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Router /admin/logout [post]
func AdminLogout(c *gin.Context) {
	if token, ok := middleware.AdminToken(c); ok && sessionService != nil {
		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		// Logout still succeeds for the browser if the row cannot be updated.
		if err := sessionService.DeactivateSession(ctx, services.HashAdminToken(token)); err != nil {
			log.Printf("[admin.logout] failed to deactivate session: %v", err)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminTokenCookie, "", -1, "/", "", secureCookie, true)
	log.Printf("[admin.logout] token cleared from cookie")

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logout successful", nil))
}
