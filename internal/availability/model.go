package availability

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("availability day not found")
	ErrInvalidDay       = errors.New("day of week must be between 0 and 6")
	ErrInvalidTime      = errors.New("time must be in HH:mm format")
	ErrInvalidRange     = errors.New("start time must be before end time")
	ErrPermissionDenied = errors.New("permission denied")
)

// Day is one weekday row of a room's weekly schedule. StartTime and EndTime
// are wall-clock values in the room's timezone, half-open [StartTime, EndTime).
// DayOfWeek follows time.Weekday numbering, Sunday = 0.
type Day struct {
	ID          string
	RoomID      string
	DayOfWeek   int
	IsAvailable bool
	StartTime   string
	EndTime     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DayPatch carries one weekday's new settings for a schedule write.
type DayPatch struct {
	DayOfWeek   int
	IsAvailable bool
	StartTime   string
	EndTime     string
}
