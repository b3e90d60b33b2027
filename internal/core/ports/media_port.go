package ports

import (
	"context"
	"io"
)

// MediaStorage keeps uploaded files under slash-separated keys such as
// "profile_pics/<name>.jpg".
type MediaStorage interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// PhotoNormalizer rewrites a stored profile photo as a fixed-size square.
type PhotoNormalizer interface {
	Normalize(ctx context.Context, key string) error
}
