package http

import (
	"time"

	"github.com/studiobook/studio-booking-backend/internal/user"
)

// UserTag is the compact user reference embedded in other responses.
type UserTag struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

type RegisterRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	DisplayName   *string `json:"display_name"`
	IsStudioOwner bool    `json:"is_studio_owner"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UpdateProfileRequest struct {
	DisplayName   *string `json:"display_name"`
	IsStudioOwner *bool   `json:"is_studio_owner"`
}

type UpdateStripeSettingsRequest struct {
	PublishableKey *string `json:"stripe_publishable_key"`
	SecretKey      *string `json:"stripe_secret_key"`
	WebhookSecret  *string `json:"stripe_webhook_secret"`
	Enabled        *bool   `json:"stripe_enabled"`
}

// UserResponse is the public profile shape. Secret key material is never
// echoed back; only presence flags are.
type UserResponse struct {
	ID                   string     `json:"id"`
	Email                string     `json:"email"`
	DisplayName          *string    `json:"display_name"`
	IsStudioOwner        bool       `json:"is_studio_owner"`
	IsSystemAdmin        bool       `json:"is_system_admin"`
	StripePublishableKey *string    `json:"stripe_publishable_key,omitempty"`
	StripeEnabled        bool       `json:"stripe_enabled"`
	HasStripeSecretKey   bool       `json:"has_stripe_secret_key"`
	CreatedAt            time.Time  `json:"created_at"`
	LastLoginAt          *time.Time `json:"last_login_at,omitempty"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		DisplayName:          u.DisplayName,
		IsStudioOwner:        u.IsStudioOwner,
		IsSystemAdmin:        u.IsSystemAdmin,
		StripePublishableKey: u.StripePublishableKey,
		StripeEnabled:        u.StripeEnabled,
		HasStripeSecretKey:   u.StripeSecretKey != nil && *u.StripeSecretKey != "",
		CreatedAt:            u.CreatedAt,
		LastLoginAt:          u.LastLoginAt,
	}
}
