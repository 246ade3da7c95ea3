package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobook/studio-booking-backend/internal/availability"
	"github.com/studiobook/studio-booking-backend/internal/payment"
	"github.com/studiobook/studio-booking-backend/internal/pkg/tzdisplay"
	"github.com/studiobook/studio-booking-backend/internal/room"
	"github.com/studiobook/studio-booking-backend/internal/studio"
	"github.com/studiobook/studio-booking-backend/internal/user"
)

// --- fakes ---

type fakeRepo struct {
	mu        sync.Mutex
	bookings  []*Booking
	attempts  map[string]*Attempt
	listErrs  []error // popped per ListCompletedOnDate call
	listCalls int
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{attempts: map[string]*Attempt{}}
}

func (r *fakeRepo) ListCompletedOnDate(_ context.Context, roomID, date string) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if len(r.listErrs) > 0 {
		err := r.listErrs[0]
		r.listErrs = r.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	var out []*Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.BookingDate == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, roomID, date, startTime, endTime string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.BookingDate == date && b.StartTime < endTime && b.EndTime > startTime {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) InsertCompleted(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.PaymentConfirmationID == b.PaymentConfirmationID {
			return ErrDuplicateConfirmation
		}
		if existing.RoomID == b.RoomID && existing.BookingDate == b.BookingDate && existing.StartTime == b.StartTime {
			return ErrSlotTaken
		}
	}
	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.Status = StatusCompleted
	b.CreatedAt = time.Now()
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) GetByConfirmationID(_ context.Context, confirmationID string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentConfirmationID == confirmationID {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) ListByCustomer(_ context.Context, customerID string, _, _ int) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.CustomerID != nil && *b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) SaveAttempt(_ context.Context, a *Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.attempts[a.ConfirmationID]; ok {
		return nil
	}
	r.attempts[a.ConfirmationID] = a
	return nil
}

func (r *fakeRepo) GetAttempt(_ context.Context, confirmationID string) (*Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[confirmationID]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

type fakeRoomService struct {
	rooms map[string]*room.Room
}

func (f *fakeRoomService) Create(context.Context, room.CreateRequest) (*room.Room, error) {
	panic("not used")
}
func (f *fakeRoomService) GetByID(_ context.Context, id string) (*room.Room, error) {
	rm, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}
func (f *fakeRoomService) List(context.Context, room.Filter) ([]*room.Room, int, error) {
	panic("not used")
}
func (f *fakeRoomService) Update(context.Context, string, room.UpdateRequest, string, bool) (*room.Room, error) {
	panic("not used")
}
func (f *fakeRoomService) Delete(context.Context, string, string, bool) error {
	panic("not used")
}
func (f *fakeRoomService) IsManagedBy(context.Context, string, string) (bool, error) {
	return false, nil
}

type fakeStudioService struct {
	studios map[string]*studio.Studio
}

func (f *fakeStudioService) Create(context.Context, studio.CreateRequest) (*studio.Studio, error) {
	panic("not used")
}
func (f *fakeStudioService) GetByID(_ context.Context, id string) (*studio.Studio, error) {
	st, ok := f.studios[id]
	if !ok {
		return nil, studio.ErrNotFound
	}
	return st, nil
}
func (f *fakeStudioService) List(context.Context, studio.Filter) ([]*studio.Studio, int, error) {
	panic("not used")
}
func (f *fakeStudioService) Update(context.Context, string, studio.UpdateRequest, string, bool) (*studio.Studio, error) {
	panic("not used")
}
func (f *fakeStudioService) Delete(context.Context, string, string, bool) error {
	panic("not used")
}

type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) Register(context.Context, user.RegisterRequest) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserService) Authenticate(context.Context, string, string) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}
func (f *fakeUserService) UpdateProfile(context.Context, string, user.UpdateProfileRequest) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserService) UpdateStripeSettings(context.Context, string, user.UpdateStripeSettingsRequest) (*user.User, error) {
	panic("not used")
}

type fakeSchedule struct {
	isOpen bool
	start  string
	end    string
}

func (f *fakeSchedule) week(roomID string) []*availability.Day {
	days := make([]*availability.Day, 7)
	for dow := 0; dow < 7; dow++ {
		days[dow] = &availability.Day{
			RoomID:      roomID,
			DayOfWeek:   dow,
			IsAvailable: f.isOpen,
			StartTime:   f.start,
			EndTime:     f.end,
		}
	}
	return days
}

func (f *fakeSchedule) EnsureSchedule(_ context.Context, roomID string) ([]*availability.Day, error) {
	return f.week(roomID), nil
}
func (f *fakeSchedule) GetSchedule(_ context.Context, roomID string) ([]*availability.Day, error) {
	return f.week(roomID), nil
}
func (f *fakeSchedule) SetDay(context.Context, string, availability.DayPatch, string) (*availability.Day, error) {
	panic("not used")
}
func (f *fakeSchedule) SaveSchedule(context.Context, string, []availability.DayPatch, string) ([]*availability.Day, error) {
	panic("not used")
}

type fakeProvider struct {
	mu            sync.Mutex
	nextIntent    int
	intents       map[string]payment.IntentParams
	confirmations map[string]*payment.Confirmation
	createErr     error
	retrieveErr   error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		intents:       map[string]payment.IntentParams{},
		confirmations: map[string]*payment.Confirmation{},
	}
}

func (p *fakeProvider) CreateIntent(_ context.Context, params payment.IntentParams) (*payment.Intent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.nextIntent++
	handle := fmt.Sprintf("pi_%d", p.nextIntent)
	p.intents[handle] = params
	return &payment.Intent{Handle: handle, ClientSecret: handle + "_secret"}, nil
}

func (p *fakeProvider) RetrieveConfirmation(_ context.Context, _ string, handle string) (*payment.Confirmation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	conf, ok := p.confirmations[handle]
	if !ok {
		return nil, payment.ErrUpstream
	}
	return conf, nil
}

func (p *fakeProvider) markPaid(handle, email, name string, amount int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmations[handle] = &payment.Confirmation{
		Handle:      handle,
		Paid:        true,
		AmountCents: amount,
		Currency:    "usd",
		PayerEmail:  email,
		PayerName:   name,
		Metadata:    p.intents[handle].Metadata,
	}
}

// --- fixture ---

type fixture struct {
	repo     *fakeRepo
	provider *fakeProvider
	schedule *fakeSchedule
	service  Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		"room-1": {
			ID:              "room-1",
			StudioID:        "studio-1",
			Name:            "Live Room A",
			HourlyRateCents: 5000,
			MinimumHours:    2,
			Timezone:        "America/New_York",
		},
	}}
	studios := &fakeStudioService{studios: map[string]*studio.Studio{
		"studio-1": {ID: "studio-1", OwnerID: "owner-1", Name: "Riverside Studios"},
	}}
	users := &fakeUserService{users: map[string]*user.User{
		"owner-1": {ID: "owner-1", Email: "owner@example.com", IsStudioOwner: true},
	}}

	repo := newFakeRepo()
	provider := newFakeProvider()
	schedule := &fakeSchedule{isOpen: true, start: "10:00", end: "14:00"}

	svc := NewService(repo, rooms, studios, users, schedule, provider, 14)
	return &fixture{repo: repo, provider: provider, schedule: schedule, service: svc}
}

// tomorrowInNY picks a date guaranteed inside the bookable window.
func tomorrowInNY(t *testing.T) string {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return time.Now().In(loc).AddDate(0, 0, 1).Format(tzdisplay.DateLayout)
}

func seedBooking(f *fixture, date, start, end, confirmation string) {
	f.repo.bookings = append(f.repo.bookings, &Booking{
		ID:                    "seeded-" + confirmation,
		RoomID:                "room-1",
		BookingDate:           date,
		StartTime:             start,
		EndTime:               end,
		Hours:                 1,
		PaymentConfirmationID: confirmation,
		Status:                StatusCompleted,
	})
}

// --- tests ---

func TestListSlots(t *testing.T) {
	f := newFixture(t)
	date := tomorrowInNY(t)
	seedBooking(f, date, "11:00", "12:00", "pi_seed")

	slots, err := f.service.ListSlots(context.Background(), "room-1", date, "")
	require.NoError(t, err)
	require.Len(t, slots, 4)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.StartTime] = s.Available
	}
	assert.True(t, byTime["10:00"])
	assert.False(t, byTime["11:00"])
	assert.True(t, byTime["12:00"])
	assert.True(t, byTime["13:00"])
}

func TestListSlotsViewerZoneLabels(t *testing.T) {
	f := newFixture(t)
	date := tomorrowInNY(t)

	slots, err := f.service.ListSlots(context.Background(), "room-1", date, "America/Chicago")
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// Chicago runs one hour behind New York; the authoritative start time
	// stays room-local.
	assert.Equal(t, "10:00", slots[0].StartTime)
	assert.Equal(t, "09:00", slots[0].DisplayLabel)
}

func TestListSlotsClosedDay(t *testing.T) {
	f := newFixture(t)
	f.schedule.isOpen = false

	slots, err := f.service.ListSlots(context.Background(), "room-1", tomorrowInNY(t), "")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListSlotsTodayRejected(t *testing.T) {
	f := newFixture(t)
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	today := time.Now().In(loc).Format(tzdisplay.DateLayout)

	_, err = f.service.ListSlots(context.Background(), "room-1", today, "")
	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestListSlotsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListSlots(context.Background(), "room-1", "03/10/2026", "")
	assert.ErrorIs(t, err, ErrMalformedDate)

	_, err = f.service.ListSlots(context.Background(), "room-1", tomorrowInNY(t), "Not/AZone")
	assert.ErrorIs(t, err, ErrInvalidZone)

	_, err = f.service.ListSlots(context.Background(), "missing-room", tomorrowInNY(t), "")
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestListSlotsRetriesReadOnce(t *testing.T) {
	f := newFixture(t)
	f.repo.listErrs = []error{errors.New("connection reset")}

	slots, err := f.service.ListSlots(context.Background(), "room-1", tomorrowInNY(t), "")
	require.NoError(t, err)
	assert.Len(t, slots, 4)
	assert.Equal(t, 2, f.repo.listCalls)
}

func TestListSlotsUpstreamAfterRetry(t *testing.T) {
	f := newFixture(t)
	f.repo.listErrs = []error{errors.New("down"), errors.New("still down")}

	_, err := f.service.ListSlots(context.Background(), "room-1", tomorrowInNY(t), "")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 2, f.repo.listCalls)
}

func TestCheckStillAvailable(t *testing.T) {
	f := newFixture(t)
	date := tomorrowInNY(t)
	ctx := context.Background()

	ok, err := f.service.CheckStillAvailable(ctx, "room-1", date, "11:00", "12:00")
	require.NoError(t, err)
	assert.True(t, ok, "free before any booking exists")

	seedBooking(f, date, "11:00", "12:00", "pi_seed")

	ok, err = f.service.CheckStillAvailable(ctx, "room-1", date, "11:00", "12:00")
	require.NoError(t, err)
	assert.False(t, ok, "taken immediately after the booking is persisted")

	ok, err = f.service.CheckStillAvailable(ctx, "room-1", date, "12:00", "13:00")
	require.NoError(t, err)
	assert.True(t, ok, "adjacent slot stays free")
}

func TestBeginCheckout(t *testing.T) {
	f := newFixture(t)
	date := tomorrowInNY(t)
	customerID := "customer-1"

	session, err := f.service.BeginCheckout(context.Background(), CheckoutRequest{
		RoomID:     "room-1",
		Date:       date,
		StartTime:  "10:00",
		Hours:      2,
		CustomerID: &customerID,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ConfirmationID)
	assert.NotEmpty(t, session.ClientSecret)
	assert.Equal(t, "12:00", session.EndTime)
	assert.Equal(t, int64(10000), session.AmountCents, "2 hours at 5000 cents")

	params := f.provider.intents[session.ConfirmationID]
	assert.Equal(t, "room-1", params.Metadata["room_id"])
	assert.Equal(t, date, params.Metadata["booking_date"])
	assert.Equal(t, "America/New_York", params.Metadata["timezone"])

	attempt, err := f.repo.GetAttempt(context.Background(), session.ConfirmationID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", attempt.StartTime)
	assert.Equal(t, "12:00", attempt.EndTime)
}

func TestBeginCheckoutPolicyViolations(t *testing.T) {
	f := newFixture(t)
	date := tomorrowInNY(t)
	ctx := context.Background()

	_, err := f.service.BeginCheckout(ctx, CheckoutRequest{RoomID: "room-1", Date: date, StartTime: "10:00", Hours: 1})
	assert.ErrorIs(t, err, ErrBelowMinimumHours, "room minimum is 2 hours")

	_, err = f.service.BeginCheckout(ctx, CheckoutRequest{RoomID: "room-1", Date: date, StartTime: "08:00", Hours: 2})
	assert.ErrorIs(t, err, ErrOutsideSchedule)

	_, err = f.service.BeginCheckout(ctx, CheckoutRequest{RoomID: "room-1", Date: date, StartTime: "13:00", Hours: 2})
	assert.ErrorIs(t, err, ErrOutsideSchedule, "would run past closing")

	loc, _ := time.LoadLocation("America/New_York")
	today := time.Now().In(loc).Format(tzdisplay.DateLayout)
	_, err = f.service.BeginCheckout(ctx, CheckoutRequest{RoomID: "room-1", Date: today, StartTime: "10:00", Hours: 2})
	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestBeginCheckoutSlotTaken(t *testing.T) {
	f := newFixture(t)
	date := tomorrowInNY(t)
	seedBooking(f, date, "11:00", "12:00", "pi_seed")

	_, err := f.service.BeginCheckout(context.Background(), CheckoutRequest{
		RoomID: "room-1", Date: date, StartTime: "10:00", Hours: 2,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBeginCheckoutProviderDown(t *testing.T) {
	f := newFixture(t)
	f.provider.createErr = errors.New("stripe 500")

	_, err := f.service.BeginCheckout(context.Background(), CheckoutRequest{
		RoomID: "room-1", Date: tomorrowInNY(t), StartTime: "10:00", Hours: 2,
	})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestConfirmBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := tomorrowInNY(t)
	customerID := "customer-1"

	session, err := f.service.BeginCheckout(ctx, CheckoutRequest{
		RoomID: "room-1", Date: date, StartTime: "10:00", Hours: 2, CustomerID: &customerID,
	})
	require.NoError(t, err)

	f.provider.markPaid(session.ConfirmationID, "payer@example.com", "Pat Payer", session.AmountCents)

	b, err := f.service.ConfirmBooking(ctx, session.ConfirmationID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, "payer@example.com", b.CustomerEmail)
	assert.Equal(t, date, b.BookingDate)
	assert.Equal(t, "10:00", b.StartTime)
	assert.Equal(t, int64(10000), b.AmountTotalCents)

	// Replaying the confirmation returns the same booking, no new row.
	again, err := f.service.ConfirmBooking(ctx, session.ConfirmationID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, again.ID)
	assert.Len(t, f.repo.bookings, 1)
}

func TestConfirmBookingUnpaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.service.BeginCheckout(ctx, CheckoutRequest{
		RoomID: "room-1", Date: tomorrowInNY(t), StartTime: "10:00", Hours: 2,
	})
	require.NoError(t, err)

	f.provider.confirmations[session.ConfirmationID] = &payment.Confirmation{
		Handle: session.ConfirmationID,
		Paid:   false,
	}

	_, err = f.service.ConfirmBooking(ctx, session.ConfirmationID)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	assert.Empty(t, f.repo.bookings)
}

func TestConfirmBookingUnknownHandle(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.ConfirmBooking(context.Background(), "pi_never_created")
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestConfirmBookingLookupFailureNotRetried(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.service.BeginCheckout(ctx, CheckoutRequest{
		RoomID: "room-1", Date: tomorrowInNY(t), StartTime: "10:00", Hours: 2,
	})
	require.NoError(t, err)

	f.provider.retrieveErr = errors.New("timeout")
	_, err = f.service.ConfirmBooking(ctx, session.ConfirmationID)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Empty(t, f.repo.bookings)
}

func TestConfirmBookingConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := tomorrowInNY(t)

	// Two customers raced past the advisory check for the same slot and
	// both paid. Only one booking may exist afterwards.
	const n = 2
	sessions := make([]*CheckoutSession, n)
	for i := 0; i < n; i++ {
		session, err := f.service.BeginCheckout(ctx, CheckoutRequest{
			RoomID: "room-1", Date: date, StartTime: "10:00", Hours: 2,
		})
		require.NoError(t, err)
		f.provider.markPaid(session.ConfirmationID, fmt.Sprintf("c%d@example.com", i), "", session.AmountCents)
		sessions[i] = session
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.service.ConfirmBooking(ctx, sessions[i].ConfirmationID)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotTaken):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicted)
	assert.Len(t, f.repo.bookings, 1)
}

func TestListByCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := tomorrowInNY(t)
	customerID := "customer-1"

	session, err := f.service.BeginCheckout(ctx, CheckoutRequest{
		RoomID: "room-1", Date: date, StartTime: "12:00", Hours: 2, CustomerID: &customerID,
	})
	require.NoError(t, err)
	f.provider.markPaid(session.ConfirmationID, "c@example.com", "", session.AmountCents)
	_, err = f.service.ConfirmBooking(ctx, session.ConfirmationID)
	require.NoError(t, err)

	bookings, total, err := f.service.ListByCustomer(ctx, customerID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "12:00", bookings[0].StartTime)
}
