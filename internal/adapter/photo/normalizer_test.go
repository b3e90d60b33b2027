package photo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/motoshop/motoshop/internal/adapter/storage"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropBox(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          image.Rectangle
	}{
		{"portrait", 400, 600, image.Rect(0, 100, 400, 500)},
		{"landscape", 600, 400, image.Rect(100, 0, 500, 400)},
		{"square", 300, 300, image.Rect(0, 0, 300, 300)},
		{"odd margin floors", 401, 600, image.Rect(0, 99, 401, 500)},
		{"odd width", 5, 2, image.Rect(1, 0, 3, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := CropBox(tt.width, tt.height)
			assert.Equal(t, tt.want, box)
			assert.Equal(t, box.Dx(), box.Dy())
		})
	}
}

func saveImage(t *testing.T, s *storage.LocalStorage, key string, img image.Image) {
	t.Helper()
	format, err := imaging.FormatFromFilename(key)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	require.NoError(t, s.Save(context.Background(), key, &buf, int64(buf.Len()), ""))
}

func loadImage(t *testing.T, s *storage.LocalStorage, key string) image.Image {
	t.Helper()
	rc, err := s.Open(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	img, err := imaging.Decode(rc)
	require.NoError(t, err)
	return img
}

func TestNormalizeProducesSquare(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	n := NewSquareNormalizer(s)

	for _, key := range []string{"profile_pics/tall.png", "profile_pics/wide.jpg", "profile_pics/tiny.gif", "profile_pics/tall.bmp", "profile_pics/wide.tiff"} {
		t.Run(key, func(t *testing.T) {
			var src image.Image
			switch {
			case strings.Contains(key, "tall"):
				src = imaging.New(400, 600, color.White)
			case strings.Contains(key, "wide"):
				src = imaging.New(1024, 768, color.Black)
			default:
				src = imaging.New(20, 10, color.White)
			}
			saveImage(t, s, key, src)

			require.NoError(t, n.Normalize(context.Background(), key))

			rc, err := s.Open(context.Background(), key)
			require.NoError(t, err)
			_, format, err := image.DecodeConfig(rc)
			rc.Close()
			require.NoError(t, err)
			want, err := imaging.FormatFromFilename(key)
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(want.String()), format, "format is preserved")

			got := loadImage(t, s, key)
			assert.Equal(t, PhotoSize, got.Bounds().Dx())
			assert.Equal(t, PhotoSize, got.Bounds().Dy())
		})
	}
}

func TestNormalizeKeepsCenter(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	// 400x600 with red bands in the rows the crop removes.
	src := imaging.New(400, 600, color.NRGBA{R: 255, A: 255})
	src = imaging.Paste(src, imaging.New(400, 400, color.NRGBA{B: 255, A: 255}), image.Pt(0, 100))
	saveImage(t, s, "profile_pics/band.png", src)

	require.NoError(t, NewSquareNormalizer(s).Normalize(context.Background(), "profile_pics/band.png"))

	got := loadImage(t, s, "profile_pics/band.png")
	for _, pt := range []image.Point{{0, 0}, {150, 150}, {299, 299}} {
		r, _, b, _ := got.At(pt.X, pt.Y).RGBA()
		assert.Zero(t, r>>8, "no red at %v", pt)
		assert.Equal(t, uint32(255), b>>8, "blue at %v", pt)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	n := NewSquareNormalizer(s)

	saveImage(t, s, "profile_pics/again.png", imaging.New(640, 480, color.White))
	require.NoError(t, n.Normalize(context.Background(), "profile_pics/again.png"))
	require.NoError(t, n.Normalize(context.Background(), "profile_pics/again.png"))

	got := loadImage(t, s, "profile_pics/again.png")
	assert.Equal(t, image.Rect(0, 0, PhotoSize, PhotoSize), got.Bounds())
}

func TestNormalizeEmptyKeyIsNoop(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	assert.NoError(t, NewSquareNormalizer(s).Normalize(context.Background(), ""))
}

func TestNormalizeFailures(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	n := NewSquareNormalizer(s)
	ctx := context.Background()

	err = n.Normalize(ctx, "profile_pics/missing.png")
	assert.ErrorIs(t, err, domain.ErrPhotoNormalization)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Save(ctx, "profile_pics/broken.png", strings.NewReader("not an image"), 12, "image/png"))
	err = n.Normalize(ctx, "profile_pics/broken.png")
	assert.ErrorIs(t, err, domain.ErrPhotoNormalization)

	rc, err := s.Open(ctx, "profile_pics/broken.png")
	require.NoError(t, err)
	defer rc.Close()
	_, err = png.Decode(rc)
	assert.Error(t, err, "broken file is left as it was")

	assert.ErrorIs(t, n.Normalize(ctx, "profile_pics/file.txt"), domain.ErrPhotoNormalization)
}
