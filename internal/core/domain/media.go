package domain

import "io"

// Upload is an incoming file destined for one of the media buckets.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}
