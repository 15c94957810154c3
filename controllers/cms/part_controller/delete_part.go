package part_controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	catalog_cache "github.com/bodthegod/jpperformancecars-backend/cache"
	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletePart godoc
// @Summary Delete a part
// @Description Delete a part and, in the background, its Cloudinary folder.
// @Tags CMS - Parts
// @Produce json
// @Param id path string true "Part ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/parts/{id} [delete]
func DeletePart(c *gin.Context) {
	partID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid part ID"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	var part models.Part
	if err := config.DB.WithContext(ctx).Select("id, images").First(&part, "id = ?", partID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part not found"))
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&part).Association("Vehicles").Clear(); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM solution_parts WHERE part_id = ?", part.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&part).Error
	})
	if err != nil {
		log.Printf("[parts.delete] ❌ %s: %v", partID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete part"))
		return
	}
	catalog_cache.Invalidate()

	if len(part.Images) > 0 && imageStore != nil {
		go func(folder string) {
			deleteCtx, deleteCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer deleteCancel()

			if err := imageStore.DeleteFolder(deleteCtx, folder); err != nil {
				log.Printf("[parts.delete] ⚠️ failed to delete Cloudinary folder %s: %v", folder, err)
			} else {
				log.Printf("[parts.delete] ✅ deleted Cloudinary folder %s", folder)
			}
		}(services.PartImageFolder(partID.String()))
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part deleted successfully", gin.H{"id": partID}))
}
