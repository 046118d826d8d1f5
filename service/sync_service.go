package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tribe-africa-store/models"
	"tribe-africa-store/utils"
)

// galleryPublicPrefix is the URL path the gallery directory is served under
const galleryPublicPrefix = "/gallery/"

// SyncService downloads the design gallery from Google Drive into a local
// directory, compressed with the GALLERY preset
// Implements SyncServiceInterface
type SyncService struct {
	driveService DriveServiceInterface
	optimizer    *ImageOptimizer
	galleryDir   string
	logger       *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(driveService DriveServiceInterface, optimizer *ImageOptimizer, galleryDir string, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		driveService: driveService,
		optimizer:    optimizer,
		galleryDir:   galleryDir,
		logger:       logger,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncGallery synchronizes the gallery folder and returns every design seen.
// inserted = images written, skipped = already on disk or duplicated in this
// run, failed = download, compression or write errors.
func (s *SyncService) SyncGallery(ctx context.Context, folderID string) (models.GallerySyncResult, error) {
	var result models.GallerySyncResult
	if strings.TrimSpace(folderID) == "" {
		return result, fmt.Errorf("folderId is required")
	}

	s.logger.Info("starting gallery sync", zap.String("folder_id", folderID), zap.String("dir", s.galleryDir))

	if err := os.MkdirAll(s.galleryDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create gallery directory: %w", err)
	}

	images, err := s.driveService.ListGalleryImages(ctx, folderID)
	if err != nil {
		return result, fmt.Errorf("failed to list gallery images from Drive: %w", err)
	}
	result.Total = len(images)
	opts := CompressionPresets[PresetGallery]

	seen := make(map[string]bool)
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if seen[img.Slug] {
			s.logger.Info("skipping duplicate gallery image", zap.String("file", img.FileName))
			result.Skipped++
			continue
		}
		seen[img.Slug] = true

		if existing, ok := s.existingFile(img.Slug); ok {
			s.logger.Debug("gallery image already on disk", zap.String("file", existing))
			result.Designs = append(result.Designs, galleryDesign(img.Slug, img.Design, existing))
			result.Skipped++
			continue
		}

		data, err := s.driveService.DownloadImage(ctx, img.DriveFileID)
		if err != nil {
			s.fail(&result, img, "download", err)
			continue
		}

		compressed, err := s.optimizer.CompressImage(data, opts)
		if err != nil {
			s.fail(&result, img, "compress", err)
			continue
		}

		name := img.Slug + extensionFor(compressed.Format)
		if err := os.WriteFile(filepath.Join(s.galleryDir, name), compressed.Data, 0o644); err != nil {
			s.fail(&result, img, "write", err)
			continue
		}

		result.Designs = append(result.Designs, galleryDesign(img.Slug, img.Design, name))
		result.Inserted++
	}

	s.logger.Info("gallery sync completed",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Int("total", result.Total))
	return result, nil
}

func (s *SyncService) existingFile(slug string) (string, bool) {
	for _, ext := range []string{".jpg", ".png"} {
		name := slug + ext
		if _, err := os.Stat(filepath.Join(s.galleryDir, name)); err == nil {
			return name, true
		}
	}
	return "", false
}

func galleryDesign(slug string, design models.DesignType, fileName string) models.Design {
	return models.Design{
		ID:        slug,
		Name:      design,
		ImageURL:  galleryPublicPrefix + fileName,
		BasePrice: models.DesignPrices[design],
	}
}

// GalleryDesigns lists the designs already synced into galleryDir, so they
// survive a restart. A missing directory yields no designs; files whose name
// does not parse as a design are skipped.
func GalleryDesigns(galleryDir string, logger *zap.Logger) ([]models.Design, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(galleryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read gallery directory: %w", err)
	}

	var designs []models.Design
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parsed, err := utils.ParseDesignFileName(entry.Name())
		if err != nil {
			logger.Debug("skipping gallery file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		designs = append(designs, galleryDesign(parsed.Slug, parsed.Design, entry.Name()))
	}
	return designs, nil
}

func (s *SyncService) fail(result *models.GallerySyncResult, img models.GalleryImage, step string, err error) {
	msg := fmt.Sprintf("failed to %s %s (%s): %v", step, img.FileName, img.DriveFileID, err)
	s.logger.Error("gallery sync error", zap.String("step", step), zap.String("file", img.FileName), zap.Error(err))
	result.Failed++
	result.Errors = append(result.Errors, msg)
}

func extensionFor(format string) string {
	if format == "png" {
		return ".png"
	}
	return ".jpg"
}
