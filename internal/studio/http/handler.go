package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiobook/studio-booking-backend/internal/auth"
	"github.com/studiobook/studio-booking-backend/internal/pkg/request"
	"github.com/studiobook/studio-booking-backend/internal/pkg/response"
	"github.com/studiobook/studio-booking-backend/internal/studio"
	"github.com/studiobook/studio-booking-backend/internal/user"
)

type Handler struct {
	service     studio.Service
	userService user.Service
}

func NewHandler(service studio.Service, userService user.Service) *Handler {
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
	var req ListStudiosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	page := req.Page
	if page == 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	filter := studio.Filter{
		OwnerID:  req.OwnerID,
		City:     req.City,
		Keyword:  req.Keyword,
		Page:     page,
		PageSize: pageSize,
	}

	studios, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list studios"})
		return
	}

	items := make([]StudioResponse, len(studios))
	for i, s := range studios {
		items[i] = NewStudioResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, studio.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "studio not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStudioResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	amenities := studio.Amenities{}
	if req.Amenities != nil {
		amenities = *req.Amenities
	}

	s, err := h.service.Create(c.Request.Context(), studio.CreateRequest{
		OwnerID:     auth.GetUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Amenities:   amenities,
	})
	if err != nil {
		if errors.Is(err, studio.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewStudioResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req UpdateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	s, err := h.service.Update(c.Request.Context(), uri.ID, studio.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Amenities:   req.Amenities,
	}, userID, isSysAdmin)
	if err != nil {
		switch {
		case errors.Is(err, studio.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "studio not found"})
		case errors.Is(err, studio.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, studio.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewStudioResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if err := h.service.Delete(c.Request.Context(), uri.ID, userID, isSysAdmin); err != nil {
		switch {
		case errors.Is(err, studio.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "studio not found"})
		case errors.Is(err, studio.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			response.Error(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
