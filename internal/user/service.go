package user

import (
	"context"
	"strings"
	"time"

	"github.com/studiobook/studio-booking-backend/internal/auth"
)

type RegisterRequest struct {
	Email         string
	Password      string
	DisplayName   *string
	IsStudioOwner bool
}

type UpdateProfileRequest struct {
	DisplayName   *string
	IsStudioOwner *bool
}

type UpdateStripeSettingsRequest struct {
	PublishableKey *string
	SecretKey      *string
	WebhookSecret  *string
	Enabled        *bool
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
	UpdateStripeSettings(ctx context.Context, id string, req UpdateStripeSettingsRequest) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:         email,
		PasswordHash:  hash,
		DisplayName:   req.DisplayName,
		IsStudioOwner: req.IsStudioOwner,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInactive
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort: a failed timestamp write should not block login.
	_ = s.repo.UpdateLastLogin(ctx, u.ID, time.Now().UTC())

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		u.DisplayName = req.DisplayName
	}
	if req.IsStudioOwner != nil {
		u.IsStudioOwner = *req.IsStudioOwner
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateStripeSettings(ctx context.Context, id string, req UpdateStripeSettingsRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PublishableKey != nil {
		u.StripePublishableKey = req.PublishableKey
	}
	if req.SecretKey != nil {
		u.StripeSecretKey = req.SecretKey
	}
	if req.WebhookSecret != nil {
		u.StripeWebhookSecret = req.WebhookSecret
	}
	if req.Enabled != nil {
		u.StripeEnabled = *req.Enabled
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
