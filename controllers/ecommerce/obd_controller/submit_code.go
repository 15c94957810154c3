package obd_controller

import (
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
)

// SubmitOBDCode godoc
// @Summary Report a code
// @Description Visitors can report a code that is missing or describe what they saw. Held as pending until staff review it.
// @Tags Storefront - Diagnostics
// @Accept json
// @Produce json
// @Param submission body models.CreateOBDSubmissionRequest true "Submission"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 429 {object} models.ApiResponse
// @Router /obd-codes/submissions [post]
func SubmitOBDCode(c *gin.Context) {
	var req models.CreateOBDSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	code, ok := utils.NormalizeOBDCode(req.Code)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Code must look like P0301"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	sub := models.OBDSubmission{
		Code:           code,
		Description:    req.Description,
		Symptoms:       req.Symptoms,
		VehicleMake:    req.VehicleMake,
		VehicleModel:   req.VehicleModel,
		VehicleYear:    req.VehicleYear,
		SubmitterEmail: req.SubmitterEmail,
		Status:         models.SubmissionPending,
	}
	if err := config.DB.WithContext(ctx).Create(&sub).Error; err != nil {
		log.Printf("[obd.submit] ❌ %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save submission"))
		return
	}

	log.Printf("[obd.submit] ✅ %s submitted for review", code)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Thanks, we'll review this code shortly", gin.H{
		"id":     sub.ID,
		"code":   sub.Code,
		"status": sub.Status,
	}))
}
