package studio

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("studio not found")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrPermissionDenied = errors.New("permission denied")
)

// Amenities is the explicit capability-flag set for a studio. New amenities
// are added as fields here, not as free-form map keys.
type Amenities struct {
	WiFi             bool `json:"wifi"`
	Parking          bool `json:"parking"`
	Lounge           bool `json:"lounge"`
	Kitchen          bool `json:"kitchen"`
	AirConditioning  bool `json:"air_conditioning"`
	WheelchairAccess bool `json:"wheelchair_access"`
}

// Studio is a physical venue owned by a studio-owner account.
// Rooms hang off studios; bookings hang off rooms.
type Studio struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Phone       *string
	Email       *string
	Latitude    *float64
	Longitude   *float64
	Amenities   Amenities
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing studios.
type Filter struct {
	OwnerID  string
	City     string
	Keyword  string // Search in Name or Address
	Page     int
	PageSize int
}
