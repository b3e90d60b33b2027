package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"mime"
	"path"

	"github.com/disintegration/imaging"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
)

// PhotoSize is the side length of a normalized profile photo.
const PhotoSize = 300

// SquareNormalizer crops stored images to a centered square and resamples
// them to PhotoSize×PhotoSize, overwriting the original object.
type SquareNormalizer struct {
	storage ports.MediaStorage
	size    int
}

func NewSquareNormalizer(storage ports.MediaStorage) *SquareNormalizer {
	return &SquareNormalizer{storage: storage, size: PhotoSize}
}

// CropBox returns the centered square of side min(width, height).
func CropBox(width, height int) image.Rectangle {
	side := min(width, height)
	left := (width - side) / 2
	top := (height - side) / 2
	return image.Rect(left, top, left+side, top+side)
}

// Normalize is a no-op for an empty key. Any failure is wrapped in
// domain.ErrPhotoNormalization and leaves the stored file untouched.
func (n *SquareNormalizer) Normalize(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	format, err := imaging.FormatFromFilename(key)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPhotoNormalization, key, err)
	}

	rc, err := n.storage.Open(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPhotoNormalization, err)
	}
	src, err := imaging.Decode(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrPhotoNormalization, key, err)
	}

	bounds := src.Bounds()
	box := CropBox(bounds.Dx(), bounds.Dy()).Add(bounds.Min)
	dst := imaging.Resize(imaging.Crop(src, box), n.size, n.size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, format); err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPhotoNormalization, key, err)
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if err := n.storage.Save(ctx, key, &buf, int64(buf.Len()), contentType); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPhotoNormalization, err)
	}
	return nil
}
