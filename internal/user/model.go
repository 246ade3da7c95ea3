package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("account is deactivated")
)

// User is a platform account. Studio owners additionally carry Stripe key
// settings so checkout can charge through their own account.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	DisplayName   *string
	IsStudioOwner bool
	IsSystemAdmin bool
	IsActive      bool

	StripePublishableKey *string
	StripeSecretKey      *string
	StripeWebhookSecret  *string
	StripeEnabled        bool

	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// PaymentSecretKey returns the owner's Stripe secret key when their account
// is connected and enabled, otherwise empty string.
func (u *User) PaymentSecretKey() string {
	if u.StripeEnabled && u.StripeSecretKey != nil && *u.StripeSecretKey != "" {
		return *u.StripeSecretKey
	}
	return ""
}
