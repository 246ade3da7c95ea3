package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studiobook/studio-booking-backend/internal/auth"
	"github.com/studiobook/studio-booking-backend/internal/booking"
	"github.com/studiobook/studio-booking-backend/internal/pkg/response"
	"github.com/studiobook/studio-booking-backend/internal/room"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListSlots(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	viewerZone := c.Query("viewer_zone")

	slots, err := h.service.ListSlots(c.Request.Context(), roomID, date, viewerZone)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SlotListResponse{RoomID: roomID, Date: date, Slots: slots})
}

func (h *Handler) BookableDates(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	dates, err := h.service.BookableDates(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookableDatesResponse{RoomID: roomID, Dates: dates})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	available, err := h.service.CheckStillAvailable(c.Request.Context(), req.RoomID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckAvailabilityResponse{Available: available})
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	session, err := h.service.BeginCheckout(c.Request.Context(), booking.CheckoutRequest{
		RoomID:        req.RoomID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Hours:         req.Hours,
		CustomerID:    &userID,
		CustomerEmail: auth.GetUserEmail(c),
	})
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CheckoutResponse{
		ConfirmationID: session.ConfirmationID,
		ClientSecret:   session.ClientSecret,
		Date:           session.Date,
		StartTime:      session.StartTime,
		EndTime:        session.EndTime,
		Hours:          session.Hours,
		AmountCents:    session.AmountCents,
		Currency:       session.Currency,
	})
}

func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.ConfirmBooking(c.Request.Context(), req.ConfirmationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	bookings, total, err := h.service.ListByCustomer(c.Request.Context(), auth.GetUserID(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}
