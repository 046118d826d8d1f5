package service

import (
	"context"

	"tribe-africa-store/models"
)

// SyncServiceInterface defines the contract for gallery synchronization
type SyncServiceInterface interface {
	SyncGallery(ctx context.Context, folderID string) (models.GallerySyncResult, error)
}
