package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
)

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// ImageContentType reports the content type of an accepted image key.
func ImageContentType(key string) (string, bool) {
	contentType, ok := imageExtensions[strings.ToLower(path.Ext(key))]
	return contentType, ok
}

// newMediaKey builds a unique key inside dir that keeps the upload's extension.
func newMediaKey(dir, filename string) (string, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := ImageContentType(filename)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMedia, filename)
	}
	return dir + "/" + uuid.NewString() + ext, contentType, nil
}

func storeUpload(ctx context.Context, storage ports.MediaStorage, dir string, upload *domain.Upload) (string, error) {
	if upload == nil || upload.Reader == nil {
		return "", fmt.Errorf("%w: empty upload", domain.ErrValidation)
	}
	key, contentType, err := newMediaKey(dir, upload.Filename)
	if err != nil {
		return "", err
	}
	if err := storage.Save(ctx, key, upload.Reader, upload.Size, contentType); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return key, nil
}

// removeMedia deletes a replaced or orphaned file; failures are only logged.
func removeMedia(ctx context.Context, storage ports.MediaStorage, logger ports.LoggerPort, key string) {
	if key == "" {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		logger.Warn("Failed to delete media file", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
	}
}
