package admin_auth_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminLogin godoc
// @Summary Login as admin
// @Description Authenticate with email and password. Returns a JWT, sets the admin_token cookie and opens a session.
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.AdminLoginResponse}
// @Failure 400 {object} models.ApiResponse "Invalid credentials"
// @Failure 403 {object} models.ApiResponse "Account suspended"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /admin/login [post]
func AdminLogin(c *gin.Context) {
	log.Printf("[admin.login] attempt")

	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var admin models.Admin
	if err := config.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[admin.login] user not found: %s", email)
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid email or password"))
		} else {
			log.Printf("[admin.login] database error: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		}
		return
	}

	if !services.VerifyAdminPassword(admin.PasswordHash, req.Password) {
		log.Printf("[admin.login] invalid password: %s", email)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid email or password"))
		return
	}

	if admin.Status == models.AdminStatusSuspended {
		log.Printf("[admin.login] suspended account attempt: %s", email)
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Account is suspended"))
		return
	}

	token, err := services.GenerateAdminJWT(admin.ID.String(), admin.Email, admin.Role)
	if err != nil {
		log.Printf("[admin.login] failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	if _, err := sessionService.CreateSession(ctx, admin.ID, token, c.ClientIP(), c.Request.UserAgent()); err != nil {
		log.Printf("[admin.login] failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	now := time.Now().UTC()
	if err := config.DB.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		log.Printf("[admin.login] failed to update last login: %v", err)
	}
	admin.LastLoginAt = &now

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminTokenCookie, token, int(services.AdminTokenTTL.Seconds()), "/", "", secureCookie, true)

	log.Printf("[admin.login] success: %s (%s)", admin.Email, admin.ID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.AdminLoginResponse{
		Admin: admin.ToResponse(),
		Token: token,
	}))
}
