package obd_controller

import (
	"errors"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateSolution godoc
// @Summary Add a solution to a code
// @Tags CMS - Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Code ID (UUID)"
// @Param solution body models.CreateSolutionRequest true "Solution"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/obd-codes/{id}/solutions [post]
func CreateSolution(c *gin.Context) {
	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid code ID"))
		return
	}

	var req models.CreateSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var count int64
	if err := config.DB.WithContext(ctx).Model(&models.OBDCode{}).Where("id = ?", codeID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Code not found"))
		return
	}

	parts, ok, err := loadParts(ctx, req.PartIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "One or more part_ids do not exist"))
		return
	}

	solution := models.Solution{
		OBDCodeID:     codeID,
		Title:         req.Title,
		Steps:         datatypes.JSONSlice[string](req.Steps),
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
		SortOrder:     req.SortOrder,
		Parts:         parts,
	}
	if err := config.DB.WithContext(ctx).Omit("Parts.*").Create(&solution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create solution"))
		return
	}

	c.Set(middleware.CreatedResourceIDKey, solution.ID.String())
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Solution created successfully", solution))
}

// UpdateSolution godoc
// @Summary Update a solution
// @Tags CMS - Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Solution ID (UUID)"
// @Param solution body models.UpdateSolutionRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/solutions/{id} [patch]
func UpdateSolution(c *gin.Context) {
	solutionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid solution ID"))
		return
	}

	var input models.UpdateSolutionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var solution models.Solution
	if err := config.DB.WithContext(ctx).First(&solution, "id = ?", solutionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Solution not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	if input.Title != nil {
		solution.Title = *input.Title
	}
	if input.Steps != nil {
		solution.Steps = datatypes.JSONSlice[string](*input.Steps)
	}
	if input.Difficulty != nil {
		solution.Difficulty = *input.Difficulty
	}
	if input.EstimatedTime != nil {
		solution.EstimatedTime = *input.EstimatedTime
	}
	if input.SortOrder != nil {
		solution.SortOrder = *input.SortOrder
	}

	if err := config.DB.WithContext(ctx).Omit("Parts").Save(&solution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update solution"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Solution updated successfully", solution))
}

// DeleteSolution godoc
// @Summary Delete a solution
// @Tags CMS - Diagnostics
// @Produce json
// @Param id path string true "Solution ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/solutions/{id} [delete]
func DeleteSolution(c *gin.Context) {
	solutionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid solution ID"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var affected int64
	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM solution_parts WHERE solution_id = ?", solutionID).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Solution{}, "id = ?", solutionID)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete solution"))
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Solution not found"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Solution deleted successfully", gin.H{"id": solutionID}))
}

// LinkSolutionParts godoc
// @Summary Replace the parts linked to a solution
// @Tags CMS - Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Solution ID (UUID)"
// @Param parts body models.LinkSolutionPartsRequest true "Part IDs"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/solutions/{id}/parts [put]
func LinkSolutionParts(c *gin.Context) {
	solutionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid solution ID"))
		return
	}

	var req models.LinkSolutionPartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var solution models.Solution
	if err := config.DB.WithContext(ctx).First(&solution, "id = ?", solutionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Solution not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	parts, ok, err := loadParts(ctx, req.PartIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "One or more part_ids do not exist"))
		return
	}

	if err := config.DB.WithContext(ctx).Model(&solution).Association("Parts").Replace(parts); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to link parts"))
		return
	}
	solution.Parts = parts

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Solution parts updated", solution))
}
