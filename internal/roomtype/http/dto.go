package http

import (
	"time"

	"github.com/studiobook/studio-booking-backend/internal/roomtype"
)

type RoomTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewRoomTypeResponse(rt *roomtype.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:          rt.ID,
		Name:        rt.Name,
		Description: rt.Description,
		CreatedAt:   rt.CreatedAt,
	}
}

type CreateRoomTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
