package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: "10:00", End: "12:00"}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{"10:00", "12:00"}, true},
		{"contained", Interval{"10:30", "11:30"}, true},
		{"overlaps start", Interval{"09:00", "10:30"}, true},
		{"overlaps end", Interval{"11:30", "13:00"}, true},
		{"touches before", Interval{"08:00", "10:00"}, false},
		{"touches after", Interval{"12:00", "14:00"}, false},
		{"disjoint", Interval{"14:00", "15:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestGenerateSlots(t *testing.T) {
	t.Run("closed day yields nothing", func(t *testing.T) {
		slots, err := GenerateSlots(false, "09:00", "17:00", nil)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("open day with no bookings", func(t *testing.T) {
		slots, err := GenerateSlots(true, "09:00", "12:00", nil)
		require.NoError(t, err)
		require.Len(t, slots, 3)
		for i, want := range []string{"09:00", "10:00", "11:00"} {
			assert.Equal(t, want, slots[i].StartTime)
			assert.Equal(t, want, slots[i].DisplayLabel)
			assert.True(t, slots[i].Available)
		}
	})

	t.Run("booked hour is marked taken", func(t *testing.T) {
		// Monday 10:00-14:00 with an existing 11:00-12:00 booking.
		slots, err := GenerateSlots(true, "10:00", "14:00", []Interval{{Start: "11:00", End: "12:00"}})
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
	})

	t.Run("multi-hour booking blocks every covered slot", func(t *testing.T) {
		slots, err := GenerateSlots(true, "09:00", "15:00", []Interval{{Start: "10:00", End: "13:00"}})
		require.NoError(t, err)

		var available []string
		for _, s := range slots {
			if s.Available {
				available = append(available, s.StartTime)
			}
		}
		assert.Equal(t, []string{"09:00", "13:00", "14:00"}, available)
	})

	t.Run("starts stay inside the open window", func(t *testing.T) {
		slots, err := GenerateSlots(true, "22:00", "23:30", nil)
		require.NoError(t, err)
		for _, s := range slots {
			assert.GreaterOrEqual(t, s.StartTime, "22:00")
			assert.Less(t, s.StartTime, "23:30")
		}
	})

	t.Run("half-hour open times carry the minutes", func(t *testing.T) {
		slots, err := GenerateSlots(true, "09:30", "12:30", nil)
		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, "09:30", slots[0].StartTime)
		assert.Equal(t, "11:30", slots[2].StartTime)
	})

	t.Run("malformed schedule rows are rejected", func(t *testing.T) {
		_, err := GenerateSlots(true, "9am", "17:00", nil)
		assert.Error(t, err)

		_, err = GenerateSlots(true, "09:00", "25:00", nil)
		assert.Error(t, err)
	})
}

func TestBookableDates(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 15, 30, 0, 0, loc)

	dates := BookableDates(now, loc, 14)
	require.Len(t, dates, 14)
	assert.Equal(t, "2026-03-03", dates[0], "window starts tomorrow, never today")
	assert.Equal(t, "2026-03-16", dates[13])
	assert.NotContains(t, dates, "2026-03-02")
}

func TestBookableDatesUsesRoomZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on Mar 2 is already Mar 3 in Tokyo, so the room's first
	// bookable date is Mar 4 there.
	now := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	dates := BookableDates(now, tokyo, 7)
	assert.Equal(t, "2026-03-04", dates[0])
}

func TestDateBookable(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, loc)

	assert.False(t, DateBookable("2026-03-02", now, loc, 14), "today is never bookable")
	assert.False(t, DateBookable("2026-03-01", now, loc, 14), "the past is never bookable")
	assert.True(t, DateBookable("2026-03-03", now, loc, 14))
	assert.True(t, DateBookable("2026-03-16", now, loc, 14), "last day of the window")
	assert.False(t, DateBookable("2026-03-17", now, loc, 14), "past the window")
}
