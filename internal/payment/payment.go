package payment

import (
	"context"
	"errors"
)

var (
	// ErrUpstream wraps failures talking to the payment processor.
	ErrUpstream = errors.New("payment provider unavailable")
	// ErrNotPaid is returned when a confirmation exists but the payment
	// did not complete.
	ErrNotPaid = errors.New("payment not completed")
	ErrNotConfigured = errors.New("no payment credentials configured")
)

// IntentParams describes the charge to set up. SecretKey selects the
// account the money settles into. An empty SecretKey makes the provider
// fall back to the platform account.
type IntentParams struct {
	SecretKey   string
	AmountCents int64
	Currency    string
	Description string
	// Metadata is echoed back verbatim on the confirmation, so the
	// booking can be reconstructed from the processor's record alone.
	Metadata map[string]string
}

// Intent is a pending charge awaiting customer action.
type Intent struct {
	Handle       string
	ClientSecret string
}

// Confirmation is the processor's record of a finished (or abandoned)
// payment attempt.
type Confirmation struct {
	Handle      string
	Paid        bool
	AmountCents int64
	Currency    string
	PayerEmail  string
	PayerName   string
	Metadata    map[string]string
}

// Provider abstracts the payment processor.
type Provider interface {
	CreateIntent(ctx context.Context, params IntentParams) (*Intent, error)
	// RetrieveConfirmation looks the attempt up by its handle. SecretKey
	// follows the same fallback rule as CreateIntent.
	RetrieveConfirmation(ctx context.Context, secretKey, handle string) (*Confirmation, error)
}
