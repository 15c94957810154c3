package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const AdminTokenCookie = "admin_token"

// SessionValidator is implemented by services.AdminSessionService.
type SessionValidator interface {
	ValidateSession(ctx context.Context, tokenHash string) (bool, error)
}

// AdminAuthMiddleware validates the admin JWT (cookie first, then Bearer
// header) and requires a live session row for it.
func AdminAuthMiddleware(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := AdminToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - no token provided"))
			c.Abort()
			return
		}

		claims, err := services.VerifyAdminJWT(token)
		if err != nil {
			log.Printf("[auth] invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			c.Abort()
			return
		}

		ctx, cancel := config.WithRequestTimeout(c.Request.Context())
		defer cancel()

		active, err := sessions.ValidateSession(ctx, services.HashAdminToken(token))
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
			c.Abort()
			return
		}
		if !active {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - session expired"))
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", claims.Role)
		c.Next()
	}
}

// AdminToken reads the admin token from the cookie or Authorization header.
func AdminToken(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(AdminTokenCookie); err == nil && token != "" {
		return token, true
	}
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireSuperAdminMiddleware checks if the admin is a super admin
func RequireSuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("adminRole") != models.AdminRoleSuper {
			log.Printf("[auth] non-super-admin attempted restricted action")
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - super admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminFromContext returns the authenticated admin set by AdminAuthMiddleware.
func AdminFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	id, err := uuid.Parse(c.GetString("adminID"))
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, c.GetString("adminEmail"), true
}
