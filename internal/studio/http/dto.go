package http

import (
	"time"

	"github.com/studiobook/studio-booking-backend/internal/pkg/request"
	"github.com/studiobook/studio-booking-backend/internal/studio"
)

// ListStudiosRequest defines query parameters for listing studios.
type ListStudiosRequest struct {
	request.ListParams
	OwnerID string `form:"owner_id" binding:"omitempty,uuid"`
	City    string `form:"city"`
	Keyword string `form:"q"`
}

// StudioTag is the compact studio reference embedded in other responses.
type StudioTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StudioResponse struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Address     string           `json:"address"`
	City        string           `json:"city"`
	State       string           `json:"state"`
	Country     string           `json:"country"`
	PostalCode  string           `json:"postal_code"`
	Phone       *string          `json:"phone"`
	Email       *string          `json:"email"`
	Latitude    *float64         `json:"latitude"`
	Longitude   *float64         `json:"longitude"`
	Amenities   studio.Amenities `json:"amenities"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewStudioResponse(s *studio.Studio) StudioResponse {
	return StudioResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Country:     s.Country,
		PostalCode:  s.PostalCode,
		Phone:       s.Phone,
		Email:       s.Email,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Amenities:   s.Amenities,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type CreateStudioRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Address     string            `json:"address" binding:"required"`
	City        string            `json:"city" binding:"required"`
	State       string            `json:"state"`
	Country     string            `json:"country" binding:"required"`
	PostalCode  string            `json:"postal_code"`
	Phone       *string           `json:"phone"`
	Email       *string           `json:"email" binding:"omitempty,email"`
	Latitude    *float64          `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64          `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Amenities   *studio.Amenities `json:"amenities"`
}

type UpdateStudioRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Address     *string           `json:"address"`
	City        *string           `json:"city"`
	State       *string           `json:"state"`
	Country     *string           `json:"country"`
	PostalCode  *string           `json:"postal_code"`
	Phone       *string           `json:"phone"`
	Email       *string           `json:"email" binding:"omitempty,email"`
	Latitude    *float64          `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64          `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Amenities   *studio.Amenities `json:"amenities"`
}
