package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider charges through Stripe. Studio owners can connect their
// own account; platformKey is used when a room's owner has no key of
// their own.
type StripeProvider struct {
	platformKey string
}

func NewStripeProvider(platformKey string) *StripeProvider {
	return &StripeProvider{platformKey: platformKey}
}

func (p *StripeProvider) api(secretKey string) (*client.API, error) {
	key := secretKey
	if key == "" {
		key = p.platformKey
	}
	if key == "" {
		return nil, ErrNotConfigured
	}
	sc := &client.API{}
	sc.Init(key, nil)
	return sc, nil
}

func (p *StripeProvider) CreateIntent(ctx context.Context, params IntentParams) (*Intent, error) {
	sc, err := p.api(params.SecretKey)
	if err != nil {
		return nil, err
	}

	currency := params.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(params.AmountCents),
		Currency:    stripe.String(currency),
		Description: stripe.String(params.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	piParams.Context = ctx
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}

	pi, err := sc.PaymentIntents.New(piParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return &Intent{
		Handle:       pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (p *StripeProvider) RetrieveConfirmation(ctx context.Context, secretKey, handle string) (*Confirmation, error) {
	sc, err := p.api(secretKey)
	if err != nil {
		return nil, err
	}

	piParams := &stripe.PaymentIntentParams{}
	piParams.Context = ctx
	piParams.AddExpand("latest_charge")

	pi, err := sc.PaymentIntents.Get(handle, piParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	conf := &Confirmation{
		Handle:      pi.ID,
		Paid:        pi.Status == stripe.PaymentIntentStatusSucceeded,
		AmountCents: pi.Amount,
		Currency:    string(pi.Currency),
		Metadata:    pi.Metadata,
	}
	if pi.LatestCharge != nil && pi.LatestCharge.BillingDetails != nil {
		conf.PayerEmail = pi.LatestCharge.BillingDetails.Email
		conf.PayerName = pi.LatestCharge.BillingDetails.Name
	}
	return conf, nil
}
