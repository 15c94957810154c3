package payments

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway talks to Stripe through a per-key client instead of the
// package-level stripe.Key.
type StripeGateway struct {
	sc *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{sc: sc}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, params IntentParams) (*Intent, error) {
	p := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	p.Context = ctx
	if params.ReceiptEmail != nil {
		p.ReceiptEmail = params.ReceiptEmail
	}
	if params.Description != nil {
		p.Description = params.Description
	}
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}

	pi, err := g.sc.PaymentIntents.New(p)
	if err != nil {
		log.Printf("[stripe] ❌ create payment intent failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	log.Printf("[stripe] ✅ created payment intent %s for %d %s", pi.ID, pi.Amount, pi.Currency)
	return fromStripe(pi), nil
}

func (g *StripeGateway) GetPaymentIntent(ctx context.Context, id string) (*Intent, error) {
	p := &stripe.PaymentIntentParams{}
	p.Context = ctx

	pi, err := g.sc.PaymentIntents.Get(id, p)
	if err != nil {
		log.Printf("[stripe] ❌ get payment intent %s failed: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return fromStripe(pi), nil
}

// FromStripe converts a webhook payload into an Intent.
func FromStripe(pi *stripe.PaymentIntent) *Intent {
	return fromStripe(pi)
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
}
