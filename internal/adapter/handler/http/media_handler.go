package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/motoshop/motoshop/internal/core/services"
)

// MediaHandler serves stored uploads by key, whichever storage driver is configured.
type MediaHandler struct {
	storage ports.MediaStorage
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewMediaHandler(storage ports.MediaStorage, logger ports.LoggerPort, metrics ports.MetricsPort) *MediaHandler {
	return &MediaHandler{
		storage: storage,
		logger:  logger,
		metrics: metrics,
	}
}

// @Summary Get media file
// @Description Returns an uploaded photo or cover
// @Tags media
// @Produce image/jpeg,image/png,image/gif
// @Param key path string true "Storage key" example:"profile_pics/3f1c.png"
// @Success 200 {file} file
// @Failure 404 {object} errorResponse "Not found"
// @Router /media/{key} [get]
func (h *MediaHandler) Serve(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, err := h.storage.Open(c.Request.Context(), key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Error("Failed to open media", map[string]interface{}{
				"error": err.Error(),
				"key":   key,
			})
		}
		handleServiceError(c, err)
		return
	}
	defer rc.Close()

	contentType, ok := services.ImageContentType(key)
	if !ok {
		contentType = mime.TypeByExtension(path.Ext(key))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.logger.Warn("Failed to stream media", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
	}
}

// formUpload reads a multipart file field into a domain upload. The returned
// closer must be called once the upload is consumed.
func formUpload(c *gin.Context, field string) (*domain.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, func() { file.Close() }, nil
}
