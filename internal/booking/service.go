package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/studiobook/studio-booking-backend/internal/availability"
	"github.com/studiobook/studio-booking-backend/internal/payment"
	"github.com/studiobook/studio-booking-backend/internal/pkg/tzdisplay"
	"github.com/studiobook/studio-booking-backend/internal/room"
	"github.com/studiobook/studio-booking-backend/internal/studio"
	"github.com/studiobook/studio-booking-backend/internal/user"
)

type CheckoutRequest struct {
	RoomID        string
	Date          string
	StartTime     string
	Hours         int
	CustomerID    *string
	CustomerEmail string
}

// CheckoutSession is what the customer needs to finish paying: the
// processor handle doubles as the confirmation key for the follow-up call.
type CheckoutSession struct {
	ConfirmationID string
	ClientSecret   string
	Date           string
	StartTime      string
	EndTime        string
	Hours          int
	AmountCents    int64
	Currency       string
}

type Service interface {
	// ListSlots returns the hourly slots of one bookable date, room-local,
	// with labels reprojected into viewerZone when it is set and differs
	// from the room's zone.
	ListSlots(ctx context.Context, roomID, date, viewerZone string) ([]Slot, error)
	// BookableDates lists the dates currently open for the room.
	BookableDates(ctx context.Context, roomID string) ([]string, error)
	// CheckStillAvailable re-validates a slot right before payment starts.
	// Advisory only; the insert's uniqueness constraint is the real gate.
	CheckStillAvailable(ctx context.Context, roomID, date, startTime, endTime string) (bool, error)
	BeginCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// ConfirmBooking records the booking once the processor reports the
	// charge succeeded. Idempotent per confirmation id: replays return the
	// originally created booking.
	ConfirmBooking(ctx context.Context, confirmationID string) (*Booking, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error)
}

type service struct {
	repo          Repository
	roomService   room.Service
	studioService studio.Service
	userService   user.Service
	schedule      availability.Service
	provider      payment.Provider
	windowDays    int
}

func NewService(
	repo Repository,
	roomService room.Service,
	studioService studio.Service,
	userService user.Service,
	schedule availability.Service,
	provider payment.Provider,
	windowDays int,
) Service {
	if windowDays < 1 {
		windowDays = 14
	}
	return &service{
		repo:          repo,
		roomService:   roomService,
		studioService: studioService,
		userService:   userService,
		schedule:      schedule,
		provider:      provider,
		windowDays:    windowDays,
	}
}

func (s *service) roomZone(rm *room.Room) (*time.Location, error) {
	loc, err := tzdisplay.LoadZone(rm.Timezone)
	if err != nil {
		return nil, ErrInvalidZone
	}
	return loc, nil
}

func (s *service) dayFor(ctx context.Context, roomID string, date string, loc *time.Location) (*availability.Day, error) {
	parsed, err := time.ParseInLocation(tzdisplay.DateLayout, date, loc)
	if err != nil {
		return nil, ErrMalformedDate
	}
	weekday := int(parsed.Weekday())

	days, err := s.schedule.GetSchedule(ctx, roomID)
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		if d.DayOfWeek == weekday {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no schedule row for weekday %d of room %s", weekday, roomID)
}

// listCompletedRetrying reads the day's bookings, retrying the read once.
// Safe because listing is idempotent; writes are never retried.
func (s *service) listCompletedRetrying(ctx context.Context, roomID, date string) ([]*Booking, error) {
	booked, err := s.repo.ListCompletedOnDate(ctx, roomID, date)
	if err == nil {
		return booked, nil
	}
	log.Warn().Err(err).Str("room_id", roomID).Msg("booking list failed, retrying once")

	booked, err = s.repo.ListCompletedOnDate(ctx, roomID, date)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("booking list failed after retry")
		return nil, ErrUpstream
	}
	return booked, nil
}

func (s *service) ListSlots(ctx context.Context, roomID, date, viewerZone string) ([]Slot, error) {
	if _, err := tzdisplay.ParseDate(date); err != nil {
		return nil, ErrMalformedDate
	}

	rm, err := s.roomService.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	loc, err := s.roomZone(rm)
	if err != nil {
		return nil, err
	}

	if !DateBookable(date, time.Now(), loc, s.windowDays) {
		return nil, ErrDateNotBookable
	}

	day, err := s.dayFor(ctx, roomID, date, loc)
	if err != nil {
		return nil, err
	}

	booked, err := s.listCompletedRetrying(ctx, roomID, date)
	if err != nil {
		return nil, err
	}
	intervals := make([]Interval, len(booked))
	for i, b := range booked {
		intervals[i] = Interval{Start: b.StartTime, End: b.EndTime}
	}

	slots, err := GenerateSlots(day.IsAvailable, day.StartTime, day.EndTime, intervals)
	if err != nil {
		return nil, err
	}

	if viewerZone != "" && viewerZone != rm.Timezone {
		if _, err := tzdisplay.LoadZone(viewerZone); err != nil {
			return nil, ErrInvalidZone
		}
		for i := range slots {
			label, err := tzdisplay.ConvertWallClock(slots[i].StartTime, date, rm.Timezone, viewerZone)
			if err != nil {
				// Conversion trouble keeps the room-local label.
				continue
			}
			slots[i].DisplayLabel = label
		}
	}

	return slots, nil
}

func (s *service) BookableDates(ctx context.Context, roomID string) ([]string, error) {
	rm, err := s.roomService.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	loc, err := s.roomZone(rm)
	if err != nil {
		return nil, err
	}
	return BookableDates(time.Now(), loc, s.windowDays), nil
}

func (s *service) CheckStillAvailable(ctx context.Context, roomID, date, startTime, endTime string) (bool, error) {
	if _, err := tzdisplay.ParseDate(date); err != nil {
		return false, ErrMalformedDate
	}
	if !tzdisplay.ValidTimeOfDay(startTime) || !tzdisplay.ValidTimeOfDay(endTime) {
		return false, ErrMalformedTime
	}
	overlap, err := s.repo.HasOverlap(ctx, roomID, date, startTime, endTime)
	if err != nil {
		return false, ErrUpstream
	}
	return !overlap, nil
}

// ownerSecretKey resolves the payment credentials for a room's studio
// owner. Empty means the provider falls back to the platform account.
func (s *service) ownerSecretKey(ctx context.Context, rm *room.Room) (string, string, error) {
	st, err := s.studioService.GetByID(ctx, rm.StudioID)
	if err != nil {
		return "", "", err
	}
	owner, err := s.userService.GetByID(ctx, st.OwnerID)
	if err != nil {
		return "", "", err
	}
	return owner.PaymentSecretKey(), st.OwnerID, nil
}

func (s *service) BeginCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	loc, err := s.roomZone(rm)
	if err != nil {
		return nil, err
	}

	w := NewWizard(rm.MinimumHours)
	if err := w.SelectHours(req.Hours); err != nil {
		return nil, err
	}
	if err := w.SelectTime(req.Date, req.StartTime); err != nil {
		return nil, err
	}

	if !DateBookable(w.Date, time.Now(), loc, s.windowDays) {
		return nil, ErrDateNotBookable
	}

	day, err := s.dayFor(ctx, req.RoomID, w.Date, loc)
	if err != nil {
		return nil, err
	}
	if !day.IsAvailable || w.StartTime < day.StartTime || w.EndTime > day.EndTime {
		return nil, ErrOutsideSchedule
	}

	free, err := s.CheckStillAvailable(ctx, req.RoomID, w.Date, w.StartTime, w.EndTime)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotTaken
	}
	if err := w.BeginPayment(); err != nil {
		return nil, err
	}

	secretKey, ownerID, err := s.ownerSecretKey(ctx, rm)
	if err != nil {
		return nil, err
	}

	amount := int64(w.Hours) * rm.HourlyRateCents
	intent, err := s.provider.CreateIntent(ctx, payment.IntentParams{
		SecretKey:   secretKey,
		AmountCents: amount,
		Currency:    "usd",
		Description: fmt.Sprintf("%s on %s %s-%s", rm.Name, w.Date, w.StartTime, w.EndTime),
		Metadata: map[string]string{
			"room_id":         rm.ID,
			"booking_date":    w.Date,
			"start_time":      w.StartTime,
			"end_time":        w.EndTime,
			"hours":           strconv.Itoa(w.Hours),
			"timezone":        rm.Timezone,
			"studio_owner_id": ownerID,
			"customer_email":  req.CustomerEmail,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", rm.ID).Msg("payment intent creation failed")
		return nil, ErrUpstream
	}

	attempt := &Attempt{
		ConfirmationID: intent.Handle,
		RoomID:         rm.ID,
		CustomerID:     req.CustomerID,
		BookingDate:    w.Date,
		StartTime:      w.StartTime,
		EndTime:        w.EndTime,
		Hours:          w.Hours,
		Timezone:       rm.Timezone,
		AmountCents:    amount,
		Currency:       "usd",
	}
	if err := s.repo.SaveAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	return &CheckoutSession{
		ConfirmationID: intent.Handle,
		ClientSecret:   intent.ClientSecret,
		Date:           w.Date,
		StartTime:      w.StartTime,
		EndTime:        w.EndTime,
		Hours:          w.Hours,
		AmountCents:    amount,
		Currency:       "usd",
	}, nil
}

func (s *service) ConfirmBooking(ctx context.Context, confirmationID string) (*Booking, error) {
	attempt, err := s.repo.GetAttempt(ctx, confirmationID)
	if err != nil {
		return nil, err
	}

	rm, err := s.roomService.GetByID(ctx, attempt.RoomID)
	if err != nil {
		return nil, err
	}
	secretKey, _, err := s.ownerSecretKey(ctx, rm)
	if err != nil {
		return nil, err
	}

	// A failed lookup here is never retried: a second charge is worse
	// than asking the customer to refresh.
	conf, err := s.provider.RetrieveConfirmation(ctx, secretKey, confirmationID)
	if err != nil {
		log.Error().Err(err).Str("confirmation_id", confirmationID).Msg("payment confirmation lookup failed")
		return nil, ErrUpstream
	}
	if !conf.Paid {
		return nil, ErrPaymentIncomplete
	}

	b := &Booking{
		RoomID:                attempt.RoomID,
		CustomerID:            attempt.CustomerID,
		CustomerEmail:         conf.PayerEmail,
		CustomerName:          conf.PayerName,
		BookingDate:           attempt.BookingDate,
		StartTime:             attempt.StartTime,
		EndTime:               attempt.EndTime,
		Hours:                 attempt.Hours,
		AmountTotalCents:      conf.AmountCents,
		Currency:              attempt.Currency,
		PaymentConfirmationID: confirmationID,
	}

	err = s.repo.InsertCompleted(ctx, b)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, ErrDuplicateConfirmation):
		// Success-page revisit or webhook redelivery; hand back the row
		// the first confirmation created.
		return s.repo.GetByConfirmationID(ctx, confirmationID)
	case errors.Is(err, ErrSlotTaken):
		return nil, ErrSlotTaken
	default:
		return nil, err
	}
}

func (s *service) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error) {
	return s.repo.ListByCustomer(ctx, customerID, page, pageSize)
}
