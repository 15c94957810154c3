package obd_controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errAlreadyReviewed = errors.New("submission already reviewed")

// GetSubmissions godoc
// @Summary List visitor code submissions
// @Tags CMS - Diagnostics
// @Produce json
// @Param status query string false "pending | approved | rejected" default(pending)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Router /admin/obd-submissions [get]
func GetSubmissions(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 20)
	status := c.DefaultQuery("status", models.SubmissionPending)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.OBDSubmission{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count submissions"))
		return
	}

	subs := make([]models.OBDSubmission, 0)
	if err := query.Order("created_at DESC").Limit(limit).Offset(utils.Offset(page, limit)).Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch submissions"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Submissions fetched successfully", subs, models.NewPagination(page, limit, total)))
}

// ApproveSubmission godoc
// @Summary Approve a submission
// @Description Marks the submission approved and creates the code when the catalog does not have it.
// @Tags CMS - Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Submission ID (UUID)"
// @Param review body models.ReviewOBDSubmissionRequest false "Review notes"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/obd-submissions/{id}/approve [post]
func ApproveSubmission(c *gin.Context) {
	review(c, models.SubmissionApproved)
}

// RejectSubmission godoc
// @Summary Reject a submission
// @Tags CMS - Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Submission ID (UUID)"
// @Param review body models.ReviewOBDSubmissionRequest false "Review notes"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/obd-submissions/{id}/reject [post]
func RejectSubmission(c *gin.Context) {
	review(c, models.SubmissionRejected)
}

func review(c *gin.Context, outcome string) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid submission ID"))
		return
	}

	var req models.ReviewOBDSubmissionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}
	}

	adminID, _, _ := middleware.AdminFromContext(c)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var sub models.OBDSubmission
	var created *models.OBDCode
	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, "id = ?", subID).Error; err != nil {
			return err
		}
		if sub.Status != models.SubmissionPending {
			return errAlreadyReviewed
		}

		if outcome == models.SubmissionApproved {
			var existing int64
			if err := tx.Model(&models.OBDCode{}).Where("code = ?", sub.Code).Count(&existing).Error; err != nil {
				return err
			}
			if existing == 0 {
				code := codeFromSubmission(sub, req.Severity)
				if err := tx.Create(&code).Error; err != nil {
					return err
				}
				created = &code
			}
		}

		now := time.Now().UTC()
		sub.Status = outcome
		sub.ReviewNotes = req.Notes
		sub.ReviewedAt = &now
		if adminID != uuid.Nil {
			sub.ReviewedBy = &adminID
		}
		return tx.Save(&sub).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Submission not found"))
		case errors.Is(err, errAlreadyReviewed):
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Submission has already been reviewed"))
		default:
			log.Printf("[obd.review] ❌ %s: %v", subID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to review submission"))
		}
		return
	}

	if created != nil {
		log.Printf("[obd.review] ✅ approved %s and created code %s", subID, created.Code)
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Submission "+outcome, gin.H{
		"submission":   sub,
		"created_code": created,
	}))
}
