package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("room not found")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidStudio    = errors.New("invalid studio_id")
	ErrInvalidRoomType  = errors.New("invalid room_type_id")
	ErrInvalidRate      = errors.New("hourly rate must be positive")
	ErrInvalidMinHours  = errors.New("minimum hours must be at least 1")
	ErrInvalidTimezone  = errors.New("invalid timezone identifier")
	ErrPermissionDenied = errors.New("permission denied")
)

// Equipment is the explicit capability-flag set for a room. Extending the
// catalogue means adding a field, keeping the shape typed end to end.
type Equipment struct {
	DrumKit     bool `json:"drum_kit"`
	Piano       bool `json:"piano"`
	PASystem    bool `json:"pa_system"`
	Microphones bool `json:"microphones"`
	GuitarAmp   bool `json:"guitar_amp"`
	BassAmp     bool `json:"bass_amp"`
	Monitors    bool `json:"monitors"`
}

// Room is a bookable unit inside a studio. Times on its weekly schedule and
// bookings are wall-clock values in Timezone.
type Room struct {
	ID              string
	StudioID        string
	RoomTypeID      string
	Name            string
	Description     string
	HourlyRateCents int64
	MinimumHours    int
	Timezone        string // IANA zone name
	Equipment       Equipment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	StudioID   string
	RoomTypeID string
	Page       int
	PageSize   int
}
