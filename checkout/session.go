// Package checkout runs the two-step checkout: shipping details first, then
// card payment, then order recording.
package checkout

import (
	"strings"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/cart"
)

type Phase string

const (
	PhaseShipping Phase = "shipping"
	PhasePayment  Phase = "payment"
	PhaseComplete Phase = "complete"
)

// ShippingInfo is the first checkout form. Optional fields are nil when the
// customer left them blank.
type ShippingInfo struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	AddressLine1 string  `json:"address_line1" binding:"required,max=200"`
	AddressLine2 *string `json:"address_line2" binding:"omitempty,max=200"`
	City         string  `json:"city" binding:"required,max=100"`
	County       *string `json:"county" binding:"omitempty,max=100"`
	Postcode     string  `json:"postcode" binding:"required,max=12"`
	Country      string  `json:"country" binding:"required,max=60"`
	Notes        *string `json:"notes" binding:"omitempty,max=1000"`
}

// Validate runs the presence checks the form enforces.
func (s ShippingInfo) Validate() error {
	fields := map[string]string{}
	required := map[string]string{
		"name":          s.Name,
		"email":         s.Email,
		"address_line1": s.AddressLine1,
		"city":          s.City,
		"postcode":      s.Postcode,
		"country":       s.Country,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[field] = "is required"
		}
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		fields["email"] = "must be an email address"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Session is the server-side checkout state for one cart.
type Session struct {
	CartID                 string        `json:"cart_id"`
	Phase                  Phase         `json:"phase"`
	Shipping               *ShippingInfo `json:"shipping,omitempty"`
	PaymentIntentID        *string       `json:"payment_intent_id,omitempty"`
	ClientSecret           *string       `json:"-"`
	AmountMinor            int64         `json:"amount_minor"`
	Currency               string        `json:"currency,omitempty"`
	Items                  []cart.Item   `json:"items,omitempty"`
	OrderID                *string       `json:"order_id,omitempty"`
	OrderNumber            *string       `json:"order_number,omitempty"`
	ReconciliationRequired bool          `json:"reconciliation_required"`
	UpdatedAt              time.Time     `json:"updated_at"`
}

func newSession(cartID string) *Session {
	return &Session{CartID: cartID, Phase: PhaseShipping, UpdatedAt: time.Now().UTC()}
}

// storedSession is the persisted form; it keeps the client secret that the
// public JSON view hides.
type storedSession struct {
	Session
	ClientSecret *string `json:"client_secret,omitempty"`
}
