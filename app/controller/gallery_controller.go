package controller

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tribe-africa-store/models"
	"tribe-africa-store/service"
)

// DesignRegistry receives the designs a gallery sync produced
type DesignRegistry interface {
	AddDesigns(ctx context.Context, designs []models.Design) int
}

// GalleryController handles the admin gallery sync
type GalleryController struct {
	syncService service.SyncServiceInterface
	designs     DesignRegistry
	logger      *zap.Logger
}

// NewGalleryController creates a new GalleryController. syncService is nil
// when no Google credentials are configured.
func NewGalleryController(syncService service.SyncServiceInterface, designs DesignRegistry, logger *zap.Logger) *GalleryController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryController{syncService: syncService, designs: designs, logger: logger}
}

// SyncGallery handles GET /admin/gallery/sync?folderId=
// Downloads the design photos of a Drive folder into the gallery directory
func (c *GalleryController) SyncGallery(w http.ResponseWriter, r *http.Request) {
	if c.syncService == nil {
		writeJSON(w, c.logger, http.StatusServiceUnavailable,
			map[string]string{"error": "gallery sync is disabled: GOOGLE_APPLICATION_CREDENTIALS is not set"})
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		writeError(w, c.logger, invalidf("folderId parameter is required"))
		return
	}

	result, err := c.syncService.SyncGallery(r.Context(), folderID)
	if err != nil {
		if r.Context().Err() != nil {
			c.logger.Warn("gallery sync interrupted", zap.Error(err))
		}
		writeError(w, c.logger, err)
		return
	}

	// Synced designs become orderable right away
	if c.designs != nil {
		added := c.designs.AddDesigns(r.Context(), result.Designs)
		c.logger.Info("gallery designs registered", zap.Int("new", added), zap.Int("synced", len(result.Designs)))
	}
	writeJSON(w, c.logger, http.StatusOK, result)
}
