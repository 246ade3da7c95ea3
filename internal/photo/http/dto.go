package http

import (
	"time"

	"github.com/studiobook/studio-booking-backend/internal/photo"
)

type PhotoResponse struct {
	ID           string    `json:"id"`
	StudioID     string    `json:"studio_id"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPhotoResponse(p *photo.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		StudioID:    p.StudioID,
		URL:         photo.URL(p.ID),
		ContentType: p.ContentType,
		Size:        p.Size,
		CreatedAt:   p.CreatedAt,
	}
	if p.ThumbnailPath != nil {
		t := photo.ThumbnailURL(p.ID)
		resp.ThumbnailURL = &t
	}
	return resp
}
