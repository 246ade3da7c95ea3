package availability

import (
	"context"

	"github.com/studiobook/studio-booking-backend/internal/pkg/tzdisplay"
	"github.com/studiobook/studio-booking-backend/internal/room"
)

// Default working hours for a freshly created schedule.
const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

type Service interface {
	// EnsureSchedule guarantees the room has a row for every weekday,
	// creating missing days with default hours. Existing rows are untouched.
	EnsureSchedule(ctx context.Context, roomID string) ([]*Day, error)
	GetSchedule(ctx context.Context, roomID string) ([]*Day, error)
	SetDay(ctx context.Context, roomID string, patch DayPatch, requesterID string) (*Day, error)
	// SaveSchedule applies all given weekday settings in one transaction.
	SaveSchedule(ctx context.Context, roomID string, patches []DayPatch, requesterID string) ([]*Day, error)
}

type service struct {
	repo        Repository
	roomService room.Service
}

func NewService(repo Repository, roomService room.Service) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
	}
}

func (s *service) EnsureSchedule(ctx context.Context, roomID string) ([]*Day, error) {
	if _, err := s.roomService.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	defaults := make([]*Day, 7)
	for dow := 0; dow < 7; dow++ {
		defaults[dow] = &Day{
			RoomID:      roomID,
			DayOfWeek:   dow,
			IsAvailable: true,
			StartTime:   DefaultStartTime,
			EndTime:     DefaultEndTime,
		}
	}
	if err := s.repo.InsertDefaults(ctx, defaults); err != nil {
		return nil, err
	}
	return s.repo.GetByRoom(ctx, roomID)
}

func (s *service) GetSchedule(ctx context.Context, roomID string) ([]*Day, error) {
	// Reads lazily backfill the default week so callers never see a
	// partial schedule.
	return s.EnsureSchedule(ctx, roomID)
}

func validatePatch(p DayPatch) error {
	if p.DayOfWeek < 0 || p.DayOfWeek > 6 {
		return ErrInvalidDay
	}
	if !tzdisplay.ValidTimeOfDay(p.StartTime) || !tzdisplay.ValidTimeOfDay(p.EndTime) {
		return ErrInvalidTime
	}
	if p.StartTime >= p.EndTime {
		return ErrInvalidRange
	}
	return nil
}

func (s *service) checkManaged(ctx context.Context, roomID, requesterID string) error {
	managed, err := s.roomService.IsManagedBy(ctx, roomID, requesterID)
	if err != nil {
		return err
	}
	if !managed {
		return ErrPermissionDenied
	}
	return nil
}

func (s *service) SetDay(ctx context.Context, roomID string, patch DayPatch, requesterID string) (*Day, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if err := s.checkManaged(ctx, roomID, requesterID); err != nil {
		return nil, err
	}
	if _, err := s.EnsureSchedule(ctx, roomID); err != nil {
		return nil, err
	}
	return s.repo.UpdateDay(ctx, roomID, patch)
}

func (s *service) SaveSchedule(ctx context.Context, roomID string, patches []DayPatch, requesterID string) ([]*Day, error) {
	for _, p := range patches {
		if err := validatePatch(p); err != nil {
			return nil, err
		}
	}
	if err := s.checkManaged(ctx, roomID, requesterID); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertDays(ctx, roomID, patches); err != nil {
		return nil, err
	}
	return s.repo.GetByRoom(ctx, roomID)
}
