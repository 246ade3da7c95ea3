package roomtype

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("room type not found")
	ErrNameRequired = errors.New("name is required")
)

// RoomType is a platform-wide category of rooms (e.g., Recording Booth,
// Rehearsal Room, Live Room).
type RoomType struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
