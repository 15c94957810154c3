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
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const maxImagesPerUpload = 8

// UploadPartImages godoc
// @Summary Upload part images
// @Description Multipart upload to Cloudinary; the new URLs are appended to the part's images.
// @Tags CMS - Parts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Part ID (UUID)"
// @Param images formData file true "Image files (repeatable)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /admin/parts/{id}/images [post]
func UploadPartImages(c *gin.Context) {
	if imageStore == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Image uploads are not configured"))
		return
	}

	partID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid part ID"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid multipart form: "+err.Error()))
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "At least one image is required"))
		return
	}
	if len(files) > maxImagesPerUpload {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Too many images in one upload"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
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

	start := time.Now()
	urls, err := imageStore.UploadMultipleImages(ctx, files, services.PartImageFolder(partID.String()))
	if err != nil {
		log.Printf("[parts.images] ❌ upload for %s failed after %d files: %v", partID, len(urls), err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Image upload failed"))
		return
	}
	log.Printf("[parts.images] ⏱️ uploaded %d images in %v", len(urls), time.Since(start))

	images := append(pq.StringArray{}, part.Images...)
	images = append(images, urls...)
	if err := config.DB.WithContext(ctx).Model(&part).Update("images", images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save image URLs"))
		return
	}

	catalog_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Images uploaded successfully", gin.H{
		"id":     partID,
		"images": images,
	}))
}
