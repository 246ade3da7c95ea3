package availability

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobook/studio-booking-backend/internal/room"
)

type dayKey struct {
	roomID string
	dow    int
}

type fakeRepo struct {
	days map[dayKey]*Day
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{days: map[dayKey]*Day{}}
}

func (r *fakeRepo) GetByRoom(_ context.Context, roomID string) ([]*Day, error) {
	var out []*Day
	for k, d := range r.days {
		if k.roomID == roomID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (r *fakeRepo) InsertDefaults(_ context.Context, days []*Day) error {
	for _, d := range days {
		k := dayKey{d.RoomID, d.DayOfWeek}
		if _, exists := r.days[k]; exists {
			continue
		}
		copied := *d
		r.days[k] = &copied
	}
	return nil
}

func (r *fakeRepo) UpdateDay(_ context.Context, roomID string, patch DayPatch) (*Day, error) {
	d, ok := r.days[dayKey{roomID, patch.DayOfWeek}]
	if !ok {
		return nil, ErrNotFound
	}
	d.IsAvailable = patch.IsAvailable
	d.StartTime = patch.StartTime
	d.EndTime = patch.EndTime
	return d, nil
}

func (r *fakeRepo) UpsertDays(_ context.Context, roomID string, patches []DayPatch) error {
	for _, p := range patches {
		k := dayKey{roomID, p.DayOfWeek}
		d, ok := r.days[k]
		if !ok {
			d = &Day{RoomID: roomID, DayOfWeek: p.DayOfWeek}
			r.days[k] = d
		}
		d.IsAvailable = p.IsAvailable
		d.StartTime = p.StartTime
		d.EndTime = p.EndTime
	}
	return nil
}

type fakeRoomService struct {
	existing map[string]bool
	managers map[string]string // roomID -> ownerID
}

func (f *fakeRoomService) Create(context.Context, room.CreateRequest) (*room.Room, error) {
	panic("not used")
}
func (f *fakeRoomService) GetByID(_ context.Context, id string) (*room.Room, error) {
	if !f.existing[id] {
		return nil, room.ErrNotFound
	}
	return &room.Room{ID: id}, nil
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
func (f *fakeRoomService) IsManagedBy(_ context.Context, roomID, userID string) (bool, error) {
	if !f.existing[roomID] {
		return false, room.ErrNotFound
	}
	return f.managers[roomID] == userID, nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	rooms := &fakeRoomService{
		existing: map[string]bool{"room-1": true},
		managers: map[string]string{"room-1": "owner-1"},
	}
	return NewService(repo, rooms), repo
}

func TestEnsureScheduleCreatesDefaults(t *testing.T) {
	svc, _ := newTestService()

	days, err := svc.EnsureSchedule(context.Background(), "room-1")
	require.NoError(t, err)
	require.Len(t, days, 7)

	for dow, d := range days {
		assert.Equal(t, dow, d.DayOfWeek)
		assert.True(t, d.IsAvailable)
		assert.Equal(t, DefaultStartTime, d.StartTime)
		assert.Equal(t, DefaultEndTime, d.EndTime)
	}
}

func TestEnsureScheduleIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.EnsureSchedule(ctx, "room-1")
	require.NoError(t, err)

	// An owner edit must survive repeated ensures.
	_, err = svc.SetDay(ctx, "room-1", DayPatch{DayOfWeek: 1, IsAvailable: false, StartTime: "10:00", EndTime: "18:00"}, "owner-1")
	require.NoError(t, err)

	days, err := svc.EnsureSchedule(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.False(t, days[1].IsAvailable)
	assert.Equal(t, "10:00", days[1].StartTime)
	assert.Len(t, repo.days, 7, "no duplicate rows")
}

func TestEnsureScheduleUnknownRoom(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.EnsureSchedule(context.Background(), "nope")
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestSetDayValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SetDay(ctx, "room-1", DayPatch{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}, "owner-1")
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = svc.SetDay(ctx, "room-1", DayPatch{DayOfWeek: 1, StartTime: "9:00", EndTime: "17:00"}, "owner-1")
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = svc.SetDay(ctx, "room-1", DayPatch{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}, "owner-1")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.SetDay(ctx, "room-1", DayPatch{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}, "owner-1")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSetDayPermission(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.SetDay(context.Background(), "room-1", DayPatch{DayOfWeek: 1, IsAvailable: true, StartTime: "09:00", EndTime: "17:00"}, "stranger")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSaveScheduleBatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	patches := []DayPatch{
		{DayOfWeek: 0, IsAvailable: false, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 6, IsAvailable: true, StartTime: "12:00", EndTime: "20:00"},
	}
	days, err := svc.SaveSchedule(ctx, "room-1", patches, "owner-1")
	require.NoError(t, err)

	byDow := map[int]*Day{}
	for _, d := range days {
		byDow[d.DayOfWeek] = d
	}
	assert.False(t, byDow[0].IsAvailable)
	assert.Equal(t, "12:00", byDow[6].StartTime)
	assert.Equal(t, "20:00", byDow[6].EndTime)
}

func TestSaveScheduleRejectsBadPatch(t *testing.T) {
	svc, repo := newTestService()

	patches := []DayPatch{
		{DayOfWeek: 0, IsAvailable: true, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 1, IsAvailable: true, StartTime: "18:00", EndTime: "17:00"},
	}
	_, err := svc.SaveSchedule(context.Background(), "room-1", patches, "owner-1")
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, repo.days, "nothing written when any patch is invalid")
}
