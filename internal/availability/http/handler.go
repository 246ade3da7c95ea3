package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studiobook/studio-booking-backend/internal/auth"
	"github.com/studiobook/studio-booking-backend/internal/availability"
	"github.com/studiobook/studio-booking-backend/internal/pkg/response"
	"github.com/studiobook/studio-booking-backend/internal/room"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSchedule(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	days, err := h.service.GetSchedule(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(roomID, days))
}

func (h *Handler) SaveSchedule(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	patches := make([]availability.DayPatch, len(req.Days))
	for i, d := range req.Days {
		patches[i] = availability.DayPatch{
			DayOfWeek:   d.DayOfWeek,
			IsAvailable: d.IsAvailable,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
		}
	}

	days, err := h.service.SaveSchedule(c.Request.Context(), roomID, patches, auth.GetUserID(c))
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(roomID, days))
}

func (h *Handler) SetDay(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req DayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	day, err := h.service.SetDay(c.Request.Context(), roomID, availability.DayPatch{
		DayOfWeek:   req.DayOfWeek,
		IsAvailable: req.IsAvailable,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, auth.GetUserID(c))
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDayResponse(day))
}

func (h *Handler) writeScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, room.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, availability.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	case errors.Is(err, availability.ErrInvalidDay),
		errors.Is(err, availability.ErrInvalidTime),
		errors.Is(err, availability.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		response.Error(c, err)
	}
}
