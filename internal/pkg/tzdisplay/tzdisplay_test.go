package tzdisplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"09:60", false},
		{"09-30", false},
		{"", false},
		{"09:30:00", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTimeOfDay(tt.input), "input %q", tt.input)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	hour, minute, err := ParseTimeOfDay("14:45")
	require.NoError(t, err)
	assert.Equal(t, 14, hour)
	assert.Equal(t, 45, minute)

	_, _, err = ParseTimeOfDay("25:00")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2026-03-15")
	require.NoError(t, err)

	for _, bad := range []string{"2026/03/15", "15-03-2026", "2026-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrMalformedInput, "input %q", bad)
	}
}

func TestLoadZone(t *testing.T) {
	_, err := LoadZone("America/New_York")
	require.NoError(t, err)

	_, err = LoadZone("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrInvalidZone)
}

func TestConvertWallClock(t *testing.T) {
	tests := []struct {
		name      string
		timeOfDay string
		date      string
		from      string
		to        string
		want      string
	}{
		{"new york to chicago", "10:00", "2026-03-02", "America/New_York", "America/Chicago", "09:00"},
		{"chicago to new york", "09:00", "2026-03-02", "America/Chicago", "America/New_York", "10:00"},
		{"same zone is identity", "10:00", "2026-03-02", "America/New_York", "America/New_York", "10:00"},
		{"crosses the date line", "23:00", "2026-03-02", "America/Los_Angeles", "Asia/Tokyo", "16:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertWallClock(tt.timeOfDay, tt.date, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertWallClockRoundTrip(t *testing.T) {
	// Reprojecting there and back lands on the original wall-clock time
	// when the date boundary is not crossed.
	times := []string{"08:00", "12:30", "18:00"}
	for _, tod := range times {
		there, err := ConvertWallClock(tod, "2026-06-10", "America/New_York", "Europe/London")
		require.NoError(t, err)
		back, err := ConvertWallClock(there, "2026-06-10", "Europe/London", "America/New_York")
		require.NoError(t, err)
		assert.Equal(t, tod, back)
	}
}

func TestConvertWallClockBadInput(t *testing.T) {
	_, err := ConvertWallClock("10:00", "03/02/2026", "UTC", "UTC")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ConvertWallClock("10am", "2026-03-02", "UTC", "UTC")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ConvertWallClock("10:00", "2026-03-02", "Nowhere/Nope", "UTC")
	assert.ErrorIs(t, err, ErrInvalidZone)
}

func TestZoneLabel(t *testing.T) {
	assert.Equal(t, "Coordinated Universal Time", ZoneLabel("UTC"))

	// Unresolvable zones fall back to the identifier as given.
	assert.Equal(t, "Not/AZone", ZoneLabel("Not/AZone"))

	// Zones without a mapped long name still show an offset.
	assert.Contains(t, ZoneLabel("Asia/Kathmandu"), "UTC+05:45")
}
