package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/studiobook/studio-booking-backend/internal/pkg/storage"
	"github.com/studiobook/studio-booking-backend/internal/studio"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type Service interface {
	Upload(ctx context.Context, studioID string, header *multipart.FileHeader, uploaderID string) (*Photo, error)
	ListByStudio(ctx context.Context, studioID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id, requesterID string) error
}

type service struct {
	repo          Repository
	studioService studio.Service
	storage       storage.Storage
	imgProc       *storage.ImageProcessor
}

func NewService(repo Repository, studioService studio.Service, store storage.Storage) Service {
	return &service{
		repo:          repo,
		studioService: studioService,
		storage:       store,
		imgProc:       storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, studioID string, header *multipart.FileHeader, uploaderID string) (*Photo, error) {
	st, err := s.studioService.GetByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if !studio.IsOwner(st, uploaderID) {
		return nil, ErrPermissionDenied
	}

	if header.Size > maxUploadBytes {
		return nil, ErrTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	// Buffer the whole image so it can be saved and thumbnailed from the
	// same bytes. Bounded by the size check above.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharded layout keeps any one directory from growing unbounded.
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save photo failed: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 400, 400)
	if err != nil {
		log.Warn().Err(err).Str("photo_id", photoID).Msg("thumbnail generation failed")
	} else {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err != nil {
			log.Warn().Err(err).Str("photo_id", photoID).Msg("thumbnail save failed")
		} else {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		StudioID:      studioID,
		UploaderID:    uploaderID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) ListByStudio(ctx context.Context, studioID string) ([]*Photo, error) {
	return s.repo.ListByStudio(ctx, studioID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve photo failed: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}
	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail failed: %w", err)
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id, requesterID string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	st, err := s.studioService.GetByID(ctx, p.StudioID)
	if err != nil {
		return err
	}
	if !studio.IsOwner(st, requesterID) {
		return ErrPermissionDenied
	}

	// Best effort cleanup; the record is the source of truth.
	if err := s.storage.Delete(ctx, p.StoragePath); err != nil {
		log.Warn().Err(err).Str("photo_id", id).Msg("photo file cleanup failed")
	}
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
