package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studiobook/studio-booking-backend/internal/pkg/response"
	"github.com/studiobook/studio-booking-backend/internal/roomtype"
)

type Handler struct {
	service roomtype.Service
}

func NewHandler(service roomtype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list room types"})
		return
	}

	items := make([]RoomTypeResponse, len(types))
	for i, rt := range types {
		items[i] = NewRoomTypeResponse(rt)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rt, err := h.service.Create(c.Request.Context(), roomtype.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, roomtype.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRoomTypeResponse(rt))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room type not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
