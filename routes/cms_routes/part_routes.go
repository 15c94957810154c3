package cms_routes

import (
	"github.com/bodthegod/jpperformancecars-backend/controllers/cms/part_controller"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupPartRoutes expects an authenticated admin group.
func SetupPartRoutes(admin *gin.RouterGroup) {
	parts := admin.Group("/parts")
	{
		parts.GET("", part_controller.GetParts)
		parts.GET("/stats", part_controller.GetPartStats)
		parts.GET("/search", part_controller.SearchParts)
		parts.GET("/export", part_controller.ExportParts)
		parts.GET("/:id", part_controller.GetPartByID)
	}

	// ════════════════════════════════════════════════════════════
	// Writes (Activity Logging)
	// ════════════════════════════════════════════════════════════
	logged := parts.Group("")
	logged.Use(middleware.ActivityLoggingMiddleware())
	{
		logged.POST("", part_controller.CreatePart)
		logged.PATCH("/:id", part_controller.UpdatePart)
		logged.DELETE("/:id", part_controller.DeletePart)
		logged.POST("/:id/images", part_controller.UploadPartImages)
	}

	vehicles := admin.Group("/vehicles")
	vehicles.GET("", part_controller.GetVehicles)
	vehicles.POST("", middleware.ActivityLoggingMiddleware(), part_controller.CreateVehicle)
	vehicles.DELETE("/:id", middleware.ActivityLoggingMiddleware(), part_controller.DeleteVehicle)
}
