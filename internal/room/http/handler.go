package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studiobook/studio-booking-backend/internal/auth"
	"github.com/studiobook/studio-booking-backend/internal/pkg/response"
	"github.com/studiobook/studio-booking-backend/internal/room"
	"github.com/studiobook/studio-booking-backend/internal/user"
)

type Handler struct {
	service     room.Service
	userService user.Service
}

func NewHandler(service room.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

func (h *Handler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := room.Filter{
		StudioID:   c.Query("studio_id"),
		RoomTypeID: c.Query("room_type_id"),
		Page:       page,
		PageSize:   pageSize,
	}

	rooms, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	equipment := room.Equipment{}
	if req.Equipment != nil {
		equipment = *req.Equipment
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		StudioID:        req.StudioID,
		RoomTypeID:      req.RoomTypeID,
		Name:            req.Name,
		Description:     req.Description,
		HourlyRateCents: req.HourlyRateCents,
		MinimumHours:    req.MinimumHours,
		Timezone:        req.Timezone,
		Equipment:       equipment,
		RequesterID:     auth.GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrEmptyName),
			errors.Is(err, room.ErrInvalidStudio),
			errors.Is(err, room.ErrInvalidRoomType),
			errors.Is(err, room.ErrInvalidRate),
			errors.Is(err, room.ErrInvalidMinHours),
			errors.Is(err, room.ErrInvalidTimezone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	rm, err := h.service.Update(c.Request.Context(), id, room.UpdateRequest{
		Name:            req.Name,
		Description:     req.Description,
		HourlyRateCents: req.HourlyRateCents,
		MinimumHours:    req.MinimumHours,
		Timezone:        req.Timezone,
		Equipment:       req.Equipment,
	}, userID, isSysAdmin)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, room.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, room.ErrEmptyName),
			errors.Is(err, room.ErrInvalidRate),
			errors.Is(err, room.ErrInvalidMinHours),
			errors.Is(err, room.ErrInvalidTimezone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if err := h.service.Delete(c.Request.Context(), id, userID, isSysAdmin); err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, room.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			response.Error(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
