package cms_routes

import (
	obd "github.com/bodthegod/jpperformancecars-backend/controllers/cms/obd_controller"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupOBDRoutes expects an authenticated admin group.
func SetupOBDRoutes(admin *gin.RouterGroup) {
	codes := admin.Group("/obd-codes")
	codes.GET("", obd.GetOBDCodes)
	codes.GET("/:id", obd.GetOBDCodeByID)

	logged := admin.Group("")
	logged.Use(middleware.ActivityLoggingMiddleware())
	{
		logged.POST("/obd-codes", obd.CreateOBDCode)
		logged.PATCH("/obd-codes/:id", obd.UpdateOBDCode)
		logged.DELETE("/obd-codes/:id", obd.DeleteOBDCode)

		logged.POST("/obd-codes/:id/solutions", obd.CreateSolution)
		logged.PATCH("/solutions/:id", obd.UpdateSolution)
		logged.DELETE("/solutions/:id", obd.DeleteSolution)
		logged.PUT("/solutions/:id/parts", obd.LinkSolutionParts)

		logged.POST("/obd-submissions/:id/approve", obd.ApproveSubmission)
		logged.POST("/obd-submissions/:id/reject", obd.RejectSubmission)
	}

	admin.GET("/obd-submissions", obd.GetSubmissions)
}
