package cms_routes

import (
	"time"

	admin_controller "github.com/bodthegod/jpperformancecars-backend/controllers/cms/admin_controller"
	admin_auth "github.com/bodthegod/jpperformancecars-backend/controllers/cms/admin_controller/auth"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/gin-gonic/gin"
)

// AdminSessions is implemented by services.AdminSessionService.
type AdminSessions interface {
	middleware.SessionValidator
	admin_controller.SessionRevoker
}

// SetupAdminRoutes mounts login and the admin account endpoints. Every other
// cms route group hangs off the returned protected group.
func SetupAdminRoutes(rg *gin.RouterGroup, sessions AdminSessions) *gin.RouterGroup {
	// ════════════════════════════════════════════════════════════
	// Base Admin Group
	// ════════════════════════════════════════════════════════════

	admin := rg.Group("/admin")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════

	admin.POST("/login", middleware.RateLimiter(10, 15*time.Minute), admin_auth.AdminLogin)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth Required)
	// ════════════════════════════════════════════════════════════

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware(sessions))
	{
		protected.POST("/logout", admin_auth.AdminLogout)
		protected.GET("/me", admin_auth.GetAdminMe)
	}

	// ════════════════════════════════════════════════════════════
	// Super Admin Only Routes
	// ════════════════════════════════════════════════════════════

	superAdmin := protected.Group("")
	superAdmin.Use(middleware.RequireSuperAdminMiddleware())
	{
		superAdmin.GET("/admins", admin_controller.GetAdmins)
		superAdmin.PATCH("/admins/:id/status", admin_controller.UpdateAdminStatus(sessions))
		superAdmin.GET("/activity", admin_controller.GetActivityLogs)
	}

	return protected
}
