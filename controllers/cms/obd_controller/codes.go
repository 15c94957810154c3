package obd_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetOBDCodes godoc
// @Summary List OBD codes
// @Tags CMS - Diagnostics
// @Produce json
// @Param q query string false "Code prefix or description text"
// @Param severity query string false "low | medium | high"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Router /admin/obd-codes [get]
func GetOBDCodes(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 20)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.OBDCode{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		if utils.IsOBDCodePrefix(q) {
			query = query.Where("code LIKE ?", strings.ToUpper(q)+"%")
		} else {
			query = query.Where(`description ILIKE ? ESCAPE '\'`, utils.ContainsPattern(q))
		}
	}
	if severity := c.Query("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count codes"))
		return
	}

	codes := make([]models.OBDCode, 0)
	if err := query.Order("code ASC").Limit(limit).Offset(utils.Offset(page, limit)).Find(&codes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch codes"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Codes fetched successfully", codes, models.NewPagination(page, limit, total)))
}

// GetOBDCodeByID godoc
// @Summary Get an OBD code
// @Description Code with its solutions and their linked parts.
// @Tags CMS - Diagnostics
// @Produce json
// @Param id path string true "Code ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/obd-codes/{id} [get]
func GetOBDCodeByID(c *gin.Context) {
	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid code ID"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var code models.OBDCode
	err = config.DB.WithContext(ctx).
		Preload("Solutions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, created_at") }).
		Preload("Solutions.Parts").
		First(&code, "id = ?", codeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Code not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Code fetched successfully", code))
}

// CreateOBDCode godoc
// @Summary Create an OBD code
// @Tags CMS - Diagnostics
// @Accept json
// @Produce json
// @Param code body models.CreateOBDCodeRequest true "Code"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/obd-codes [post]
func CreateOBDCode(c *gin.Context) {
	var req models.CreateOBDCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	normalized, ok := utils.NormalizeOBDCode(req.Code)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Code must look like P0301"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	code := models.OBDCode{
		Code:         normalized,
		Description:  req.Description,
		Severity:     req.Severity,
		CommonCauses: datatypes.JSONSlice[string](req.CommonCauses),
		Symptoms:     datatypes.JSONSlice[string](req.Symptoms),
	}
	if err := config.DB.WithContext(ctx).Create(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Code "+normalized+" already exists"))
			return
		}
		log.Printf("[obd.create] ❌ %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create code"))
		return
	}

	c.Set(middleware.CreatedResourceIDKey, code.ID.String())
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Code created successfully", code))
}

// UpdateOBDCode godoc
// @Summary Update an OBD code
// @Tags CMS - Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Code ID (UUID)"
// @Param code body models.UpdateOBDCodeRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/obd-codes/{id} [patch]
func UpdateOBDCode(c *gin.Context) {
	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid code ID"))
		return
	}

	var input models.UpdateOBDCodeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var code models.OBDCode
	if err := config.DB.WithContext(ctx).First(&code, "id = ?", codeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Code not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	if input.Description != nil {
		code.Description = *input.Description
	}
	if input.Severity != nil {
		code.Severity = *input.Severity
	}
	if input.CommonCauses != nil {
		code.CommonCauses = datatypes.JSONSlice[string](*input.CommonCauses)
	}
	if input.Symptoms != nil {
		code.Symptoms = datatypes.JSONSlice[string](*input.Symptoms)
	}

	if err := config.DB.WithContext(ctx).Save(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update code"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Code updated successfully", code))
}

// DeleteOBDCode godoc
// @Summary Delete an OBD code
// @Description Removes the code and its solutions.
// @Tags CMS - Diagnostics
// @Produce json
// @Param id path string true "Code ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/obd-codes/{id} [delete]
func DeleteOBDCode(c *gin.Context) {
	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid code ID"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	result := config.DB.WithContext(ctx).Delete(&models.OBDCode{}, "id = ?", codeID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete code"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Code not found"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Code deleted successfully", gin.H{"id": codeID}))
}
