// Package payments wraps the card processor behind a small interface so the
// checkout flow and the payment-intent endpoint can be exercised with fakes.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Charge bounds in minor units (pence).
const (
	MinAmount int64 = 50
	MaxAmount int64 = 1000000
)

const (
	StatusSucceeded  = "succeeded"
	StatusProcessing = "processing"
)

var (
	ErrAmountOutOfRange = errors.New("amount out of range")
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrGateway          = errors.New("payment provider error")
)

// Intent is the processor-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

func (i *Intent) Succeeded() bool {
	return i != nil && i.Status == StatusSucceeded
}

// Charged reports whether the customer has paid or the payment is settling.
// A charged intent must not be replaced by a new one.
func (i *Intent) Charged() bool {
	return i != nil && (i.Status == StatusSucceeded || i.Status == StatusProcessing)
}

// IntentParams describes a new charge. ReceiptEmail is optional.
type IntentParams struct {
	Amount       int64
	Currency     string
	ReceiptEmail *string
	Description  *string
	Metadata     map[string]string
}

type Gateway interface {
	CreatePaymentIntent(ctx context.Context, params IntentParams) (*Intent, error)
	GetPaymentIntent(ctx context.Context, id string) (*Intent, error)
}

// ValidateAmount enforces the [MinAmount, MaxAmount] window.
func ValidateAmount(minor int64) error {
	if minor < MinAmount || minor > MaxAmount {
		return fmt.Errorf("%w: %d not within [%d, %d]", ErrAmountOutOfRange, minor, MinAmount, MaxAmount)
	}
	return nil
}

// NormalizeCurrency lower-cases an ISO 4217 code and rejects anything that
// is not three letters.
func NormalizeCurrency(currency string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(currency))
	if len(c) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	for _, r := range c {
		if r < 'a' || r > 'z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
		}
	}
	return c, nil
}
