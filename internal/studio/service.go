package studio

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OwnerID     string
	Name        string
	Description string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Phone       *string
	Email       *string
	Latitude    *float64
	Longitude   *float64
	Amenities   Amenities
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
	Phone       *string
	Email       *string
	Latitude    *float64
	Longitude   *float64
	Amenities   *Amenities
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Studio, error)
	GetByID(ctx context.Context, id string) (*Studio, error)
	List(ctx context.Context, filter Filter) ([]*Studio, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, requesterID string, isSysAdmin bool) (*Studio, error)
	Delete(ctx context.Context, id string, requesterID string, isSysAdmin bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Studio, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	st := &Studio{
		OwnerID:     req.OwnerID,
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
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Studio, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Studio, int, error) {
	return s.repo.List(ctx, filter)
}

// IsOwner reports whether userID owns the studio.
func IsOwner(st *Studio, userID string) bool {
	return st.OwnerID == userID
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, requesterID string, isSysAdmin bool) (*Studio, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isSysAdmin && !IsOwner(st, requesterID) {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.Address != nil {
		st.Address = *req.Address
	}
	if req.City != nil {
		st.City = *req.City
	}
	if req.State != nil {
		st.State = *req.State
	}
	if req.Country != nil {
		st.Country = *req.Country
	}
	if req.PostalCode != nil {
		st.PostalCode = *req.PostalCode
	}
	if req.Phone != nil {
		st.Phone = req.Phone
	}
	if req.Email != nil {
		st.Email = req.Email
	}
	if req.Latitude != nil {
		st.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		st.Longitude = req.Longitude
	}
	if req.Amenities != nil {
		st.Amenities = *req.Amenities
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id string, requesterID string, isSysAdmin bool) error {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isSysAdmin && !IsOwner(st, requesterID) {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
