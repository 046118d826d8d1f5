package service

import (
	"context"

	"tribe-africa-store/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListGalleryImages(ctx context.Context, folderID string) ([]models.GalleryImage, error)
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
