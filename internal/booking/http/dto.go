package http

import (
	"time"

	"github.com/studiobook/studio-booking-backend/internal/booking"
)

type SlotListResponse struct {
	RoomID string         `json:"room_id"`
	Date   string         `json:"date"`
	Slots  []booking.Slot `json:"slots"`
}

type BookableDatesResponse struct {
	RoomID string   `json:"room_id"`
	Dates  []string `json:"dates"`
}

type CheckAvailabilityRequest struct {
	RoomID    string `json:"room_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type CheckAvailabilityResponse struct {
	Available bool `json:"available"`
}

type CheckoutRequest struct {
	RoomID    string `json:"room_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	Hours     int    `json:"hours" binding:"required,min=1"`
}

type CheckoutResponse struct {
	ConfirmationID string `json:"confirmation_id"`
	ClientSecret   string `json:"client_secret"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Hours          int    `json:"hours"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
}

type ConfirmRequest struct {
	ConfirmationID string `json:"confirmation_id" binding:"required"`
}

type BookingResponse struct {
	ID               string    `json:"id"`
	RoomID           string    `json:"room_id"`
	BookingDate      string    `json:"booking_date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Hours            int       `json:"hours"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerName     string    `json:"customer_name"`
	AmountTotalCents int64     `json:"amount_total_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		RoomID:           b.RoomID,
		BookingDate:      b.BookingDate,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Hours:            b.Hours,
		CustomerEmail:    b.CustomerEmail,
		CustomerName:     b.CustomerName,
		AmountTotalCents: b.AmountTotalCents,
		Currency:         b.Currency,
		Status:           b.Status,
		CreatedAt:        b.CreatedAt,
	}
}
