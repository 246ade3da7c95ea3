package room

import (
	"context"
	"errors"
	"strings"

	"github.com/studiobook/studio-booking-backend/internal/pkg/tzdisplay"
	"github.com/studiobook/studio-booking-backend/internal/roomtype"
	"github.com/studiobook/studio-booking-backend/internal/studio"
)

type CreateRequest struct {
	StudioID        string
	RoomTypeID      string
	Name            string
	Description     string
	HourlyRateCents int64
	MinimumHours    int
	Timezone        string // empty means platform default
	Equipment       Equipment
	RequesterID     string
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	HourlyRateCents *int64
	MinimumHours    *int
	Timezone        *string
	Equipment       *Equipment
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, requesterID string, isSysAdmin bool) (*Room, error)
	Delete(ctx context.Context, id string, requesterID string, isSysAdmin bool) error

	// IsManagedBy reports whether userID owns the studio the room belongs to.
	IsManagedBy(ctx context.Context, roomID, userID string) (bool, error)
}

type service struct {
	repo            Repository
	studioService   studio.Service
	rtService       roomtype.Service
	defaultTimezone string
}

func NewService(repo Repository, studioService studio.Service, rtService roomtype.Service, defaultTimezone string) Service {
	return &service{
		repo:            repo,
		studioService:   studioService,
		rtService:       rtService,
		defaultTimezone: defaultTimezone,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.HourlyRateCents <= 0 {
		return nil, ErrInvalidRate
	}
	if req.MinimumHours < 1 {
		return nil, ErrInvalidMinHours
	}

	st, err := s.studioService.GetByID(ctx, req.StudioID)
	if err != nil {
		return nil, ErrInvalidStudio
	}
	if !studio.IsOwner(st, req.RequesterID) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.rtService.GetByID(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return nil, ErrInvalidRoomType
		}
		return nil, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}
	if _, err := tzdisplay.LoadZone(tz); err != nil {
		return nil, ErrInvalidTimezone
	}

	rm := &Room{
		StudioID:        req.StudioID,
		RoomTypeID:      req.RoomTypeID,
		Name:            req.Name,
		Description:     req.Description,
		HourlyRateCents: req.HourlyRateCents,
		MinimumHours:    req.MinimumHours,
		Timezone:        tz,
		Equipment:       req.Equipment,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) IsManagedBy(ctx context.Context, roomID, userID string) (bool, error) {
	rm, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return false, err
	}
	st, err := s.studioService.GetByID(ctx, rm.StudioID)
	if err != nil {
		return false, err
	}
	return studio.IsOwner(st, userID), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, requesterID string, isSysAdmin bool) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isSysAdmin {
		managed, err := s.IsManagedBy(ctx, id, requesterID)
		if err != nil {
			return nil, err
		}
		if !managed {
			return nil, ErrPermissionDenied
		}
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		rm.Name = *req.Name
	}
	if req.Description != nil {
		rm.Description = *req.Description
	}
	if req.HourlyRateCents != nil {
		if *req.HourlyRateCents <= 0 {
			return nil, ErrInvalidRate
		}
		rm.HourlyRateCents = *req.HourlyRateCents
	}
	if req.MinimumHours != nil {
		if *req.MinimumHours < 1 {
			return nil, ErrInvalidMinHours
		}
		rm.MinimumHours = *req.MinimumHours
	}
	if req.Timezone != nil {
		if _, err := tzdisplay.LoadZone(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		rm.Timezone = *req.Timezone
	}
	if req.Equipment != nil {
		rm.Equipment = *req.Equipment
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string, requesterID string, isSysAdmin bool) error {
	if !isSysAdmin {
		managed, err := s.IsManagedBy(ctx, id, requesterID)
		if err != nil {
			return err
		}
		if !managed {
			return ErrPermissionDenied
		}
	}
	return s.repo.Delete(ctx, id)
}
