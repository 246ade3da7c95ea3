package http

import (
	"github.com/studiobook/studio-booking-backend/internal/availability"
)

type DayResponse struct {
	DayOfWeek   int    `json:"day_of_week"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

func NewDayResponse(d *availability.Day) DayResponse {
	return DayResponse{
		DayOfWeek:   d.DayOfWeek,
		IsAvailable: d.IsAvailable,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
	}
}

type ScheduleResponse struct {
	RoomID string        `json:"room_id"`
	Days   []DayResponse `json:"days"`
}

func NewScheduleResponse(roomID string, days []*availability.Day) ScheduleResponse {
	items := make([]DayResponse, len(days))
	for i, d := range days {
		items[i] = NewDayResponse(d)
	}
	return ScheduleResponse{RoomID: roomID, Days: items}
}

type DayRequest struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

type SaveScheduleRequest struct {
	Days []DayRequest `json:"days" binding:"required,min=1,max=7,dive"`
}
