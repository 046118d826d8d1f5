package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"tribe-africa-store/models"
	"tribe-africa-store/utils"
)

// maxDriveImageBytes caps a single gallery download
const maxDriveImageBytes = 32 << 20

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
	logger *zap.Logger
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string, logger *zap.Logger) (*DriveService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driveService, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{client: driveService, logger: logger}, nil
}

var _ DriveServiceInterface = (*DriveService)(nil)

// ListGalleryImages lists the images in a Drive folder whose filename names
// a design, e.g. "earth blue maxi dress.png"
func (ds *DriveService) ListGalleryImages(ctx context.Context, folderID string) ([]models.GalleryImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	var images []models.GalleryImage
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}

		parsed, err := utils.ParseDesignFileName(file.Name)
		if err != nil {
			ds.logger.Warn("skipping gallery file", zap.String("file", file.Name), zap.Error(err))
			continue
		}

		images = append(images, models.GalleryImage{
			DriveFileID: file.Id,
			FileName:    file.Name,
			MimeType:    file.MimeType,
			Design:      parsed.Design,
			Fabric:      parsed.Fabric,
			Slug:        parsed.Slug,
		})
	}

	return images, nil
}

// DownloadImage downloads the content of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
