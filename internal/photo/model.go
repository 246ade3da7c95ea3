package photo

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("photo not found")
	ErrNoThumbnail      = errors.New("thumbnail not available")
	ErrNotAnImage       = errors.New("file is not an image")
	ErrTooLarge         = errors.New("file exceeds the size limit")
	ErrPermissionDenied = errors.New("permission denied")
)

// Photo is an image attached to a studio's gallery.
type Photo struct {
	ID            string    `json:"id"`
	StudioID      string    `json:"studio_id"`
	UploaderID    string    `json:"uploader_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public URL serving the photo content.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL serving the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
