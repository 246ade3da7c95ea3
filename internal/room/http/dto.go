package http

import (
	"time"

	"github.com/studiobook/studio-booking-backend/internal/room"
)

// RoomTag is the compact room reference embedded in other responses.
type RoomTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomResponse struct {
	ID              string         `json:"id"`
	StudioID        string         `json:"studio_id"`
	RoomTypeID      string         `json:"room_type_id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	HourlyRateCents int64          `json:"hourly_rate_cents"`
	MinimumHours    int            `json:"minimum_hours"`
	Timezone        string         `json:"timezone"`
	Equipment       room.Equipment `json:"equipment"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:              rm.ID,
		StudioID:        rm.StudioID,
		RoomTypeID:      rm.RoomTypeID,
		Name:            rm.Name,
		Description:     rm.Description,
		HourlyRateCents: rm.HourlyRateCents,
		MinimumHours:    rm.MinimumHours,
		Timezone:        rm.Timezone,
		Equipment:       rm.Equipment,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

type CreateRoomRequest struct {
	StudioID        string          `json:"studio_id" binding:"required,uuid"`
	RoomTypeID      string          `json:"room_type_id" binding:"required,uuid"`
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	HourlyRateCents int64           `json:"hourly_rate_cents" binding:"required,min=1"`
	MinimumHours    int             `json:"minimum_hours" binding:"required,min=1"`
	Timezone        string          `json:"timezone"`
	Equipment       *room.Equipment `json:"equipment"`
}

type UpdateRoomRequest struct {
	Name            *string         `json:"name"`
	Description     *string         `json:"description"`
	HourlyRateCents *int64          `json:"hourly_rate_cents" binding:"omitempty,min=1"`
	MinimumHours    *int            `json:"minimum_hours" binding:"omitempty,min=1"`
	Timezone        *string         `json:"timezone"`
	Equipment       *room.Equipment `json:"equipment"`
}
