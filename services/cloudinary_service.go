package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const partImageRoot = "jp-performance/parts"

// PartImageFolder is where a part's images live.
func PartImageFolder(partID string) string {
	return partImageRoot + "/" + partID
}

// ImageStore is the subset of CloudinaryService the part controller uses.
type ImageStore interface {
	UploadMultipleImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error)
	DeleteFolder(ctx context.Context, folderPath string) error
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cfg config.CloudinaryConfig) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld}, nil
}

// UploadImage uploads a single image and returns its secure URL.
func (s *CloudinaryService) UploadImage(ctx context.Context, file multipart.File, filename string, folder string) (string, error) {
	unique := true
	overwrite := false
	uploadParams := uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	}
	if filename != "" {
		uploadParams.PublicID = filename
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload successful but no URL returned")
	}
	return result.SecureURL, nil
}

// UploadMultipleImages uploads files in order and returns their URLs.
func (s *CloudinaryService) UploadMultipleImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		url, err := s.uploadHeader(ctx, fileHeader, folder)
		if err != nil {
			return urls, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *CloudinaryService) uploadHeader(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", fh.Filename, err)
	}
	defer file.Close()
	return s.UploadImage(ctx, file, "", folder)
}

// DeleteFolder removes every asset under folderPath, then the folder.
func (s *CloudinaryService) DeleteFolder(ctx context.Context, folderPath string) error {
	if _, err := s.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{folderPath},
	}); err != nil {
		return fmt.Errorf("failed to delete assets in folder %s: %w", folderPath, err)
	}

	// Cloudinary usually drops empty folders itself.
	if _, err := s.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folderPath}); err != nil {
		log.Printf("[cloudinary] folder %s not removed: %v", folderPath, err)
	}
	log.Printf("[cloudinary] deleted assets under %s", folderPath)
	return nil
}
