package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/cenkalti/backoff/v4"
)

// MetadataCartID links a payment intent back to the cart that created it.
const MetadataCartID = "cart_id"

// OrderNotifier is told about every newly recorded order. Notifiers run after
// the cart is settled and their failures never affect the checkout result.
type OrderNotifier interface {
	OrderRecorded(ctx context.Context, order *models.Order)
}

type Options struct {
	Currency  string
	Notifiers []OrderNotifier
	// Backoff builds the retry policy for the order write. Defaults to an
	// exponential backoff capped at three retries.
	Backoff func() backoff.BackOff
}

// Flow drives checkout from shipping details to a recorded order.
type Flow struct {
	carts      *cart.Store
	sessions   SessionStore
	gateway    payments.Gateway
	orders     OrderWriter
	reconcile  ReconciliationQueue
	notifiers  []OrderNotifier
	currency   string
	newBackoff func() backoff.BackOff
}

func NewFlow(carts *cart.Store, sessions SessionStore, gateway payments.Gateway, orders OrderWriter, reconcile ReconciliationQueue, opts Options) *Flow {
	currency := opts.Currency
	if currency == "" {
		currency = "gbp"
	}
	newBackoff := opts.Backoff
	if newBackoff == nil {
		newBackoff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return backoff.WithMaxRetries(b, 3)
		}
	}
	return &Flow{
		carts:      carts,
		sessions:   sessions,
		gateway:    gateway,
		orders:     orders,
		reconcile:  reconcile,
		notifiers:  opts.Notifiers,
		currency:   currency,
		newBackoff: newBackoff,
	}
}

// PaymentStart is what the storefront needs to mount the card form.
type PaymentStart struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// Session returns the checkout session for cartID, starting a fresh one at
// the shipping step when none exists.
func (f *Flow) Session(ctx context.Context, cartID string) (*Session, error) {
	s, err := f.sessions.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load checkout session: %w", err)
	}
	if s == nil {
		s = newSession(cartID)
	}
	return s, nil
}

// SubmitShipping validates the shipping form and moves to the payment step.
// It may be called again from the payment step to edit the details; an
// existing intent is kept and reused by StartPayment when the amount still
// matches.
func (f *Flow) SubmitShipping(ctx context.Context, cartID string, info ShippingInfo) (*Session, error) {
	s, err := f.Session(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if s.Phase == PhaseComplete {
		s = newSession(cartID)
	}

	state, err := f.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if state.IsEmpty() {
		return s, ErrEmptyCart
	}
	if err := info.Validate(); err != nil {
		return s, err
	}

	s.Shipping = &info
	s.Phase = PhasePayment
	s.UpdatedAt = time.Now().UTC()
	if err := f.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}
	log.Printf("[checkout] shipping accepted for cart %s", cartID)
	return s, nil
}

// StartPayment creates (or reuses) the payment intent for the current cart
// total.
func (f *Flow) StartPayment(ctx context.Context, cartID string) (*PaymentStart, error) {
	s, err := f.Session(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if s.Phase != PhasePayment || s.Shipping == nil {
		return nil, fmt.Errorf("%w: expected %s, at %s", ErrInvalidPhase, PhasePayment, s.Phase)
	}
	if s.PaymentIntentID != nil {
		if s.ReconciliationRequired {
			return nil, &PaymentReceivedError{PaymentIntentID: *s.PaymentIntentID}
		}
		current, err := f.gateway.GetPaymentIntent(ctx, *s.PaymentIntentID)
		if err != nil {
			return nil, err
		}
		if current.Charged() {
			return nil, &PaymentReceivedError{PaymentIntentID: current.ID}
		}
	}

	state, err := f.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if state.IsEmpty() {
		return nil, ErrEmptyCart
	}

	amount := utils.ToMinorUnits(state.Total())
	if err := payments.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if s.PaymentIntentID != nil && s.ClientSecret != nil && s.AmountMinor == amount && s.Currency == f.currency {
		s.Items = state.Items()
		s.UpdatedAt = time.Now().UTC()
		if err := f.sessions.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("save checkout session: %w", err)
		}
		return &PaymentStart{
			ClientSecret:    *s.ClientSecret,
			PaymentIntentID: *s.PaymentIntentID,
			Amount:          amount,
			Currency:        f.currency,
		}, nil
	}

	description := fmt.Sprintf("JP Performance Cars order (%d items)", state.ItemCount())
	intent, err := f.gateway.CreatePaymentIntent(ctx, payments.IntentParams{
		Amount:       amount,
		Currency:     f.currency,
		ReceiptEmail: &s.Shipping.Email,
		Description:  &description,
		Metadata:     map[string]string{MetadataCartID: cartID},
	})
	if err != nil {
		return nil, err
	}

	s.PaymentIntentID = &intent.ID
	s.ClientSecret = &intent.ClientSecret
	s.AmountMinor = amount
	s.Currency = f.currency
	s.Items = state.Items()
	s.UpdatedAt = time.Now().UTC()
	if err := f.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}

	log.Printf("[checkout] intent %s created for cart %s (%d %s)", intent.ID, cartID, amount, f.currency)
	return &PaymentStart{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          amount,
		Currency:        f.currency,
	}, nil
}

// Complete confirms the intent with the processor and records the order. On
// success the purchased lines leave the cart. If the charge succeeded but the
// order cannot be written the cart is kept, the session is flagged and the
// intent is queued for reconciliation.
func (f *Flow) Complete(ctx context.Context, cartID string) (*models.Order, error) {
	s, err := f.Session(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if s.PaymentIntentID == nil || (s.Phase != PhasePayment && s.Phase != PhaseComplete) {
		return nil, fmt.Errorf("%w: no payment in progress", ErrInvalidPhase)
	}

	if s.Phase == PhaseComplete {
		order, err := f.orders.FindByPaymentIntent(ctx, *s.PaymentIntentID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	intent, err := f.gateway.GetPaymentIntent(ctx, *s.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if !intent.Succeeded() {
		return nil, &PaymentStatusError{PaymentIntentID: intent.ID, Status: intent.Status}
	}

	order, err := f.record(ctx, s, intent)
	if err != nil {
		s.ReconciliationRequired = true
		s.UpdatedAt = time.Now().UTC()
		if saveErr := f.sessions.Save(ctx, s); saveErr != nil {
			log.Printf("[checkout] ❌ failed to flag session %s: %v", cartID, saveErr)
		}
		f.flag(ctx, s, intent, err)
		return nil, &OrderNotRecordedError{PaymentIntentID: intent.ID, Err: err}
	}

	f.finish(ctx, s, order)
	return order, nil
}

// ReconcileIntent finalises a succeeded intent reported by the processor's
// webhook. It is a no-op when the order already exists, so it is safe to run
// alongside Complete.
func (f *Flow) ReconcileIntent(ctx context.Context, intent *payments.Intent) (*models.Order, error) {
	if !intent.Succeeded() {
		return nil, &PaymentStatusError{PaymentIntentID: intent.ID, Status: intent.Status}
	}

	existing, err := f.orders.FindByPaymentIntent(ctx, intent.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	cartID := intent.Metadata[MetadataCartID]
	var s *Session
	if cartID != "" {
		if s, err = f.sessions.Load(ctx, cartID); err != nil {
			return nil, err
		}
	}
	if s == nil || s.Shipping == nil || s.PaymentIntentID == nil || *s.PaymentIntentID != intent.ID || len(s.Items) == 0 {
		reason := errors.New("no checkout session matches this payment")
		f.flag(ctx, &Session{CartID: cartID}, intent, reason)
		return nil, &OrderNotRecordedError{PaymentIntentID: intent.ID, Err: reason}
	}

	order, err := f.record(ctx, s, intent)
	if err != nil {
		f.flag(ctx, s, intent, err)
		return nil, &OrderNotRecordedError{PaymentIntentID: intent.ID, Err: err}
	}
	f.finish(ctx, s, order)
	return order, nil
}

func (f *Flow) record(ctx context.Context, s *Session, intent *payments.Intent) (*models.Order, error) {
	items := s.Items
	if len(items) == 0 {
		state, err := f.carts.Get(ctx, s.CartID)
		if err != nil {
			return nil, err
		}
		items = state.Items()
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	s.Items = items

	draft := OrderDraft{
		PaymentIntentID: intent.ID,
		Shipping:        *s.Shipping,
		Items:           items,
		Total:           utils.FromMinorUnits(intent.Amount),
		Currency:        intent.Currency,
	}

	var order *models.Order
	op := func() error {
		o, err := f.orders.RecordPaidOrder(ctx, draft)
		if err != nil {
			log.Printf("[checkout] ⚠️ order write for %s failed: %v", intent.ID, err)
			return err
		}
		order = o
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(f.newBackoff(), ctx)); err != nil {
		return nil, err
	}
	return order, nil
}

func (f *Flow) finish(ctx context.Context, s *Session, order *models.Order) {
	orderID := order.ID.String()
	s.Phase = PhaseComplete
	s.OrderID = &orderID
	s.OrderNumber = &order.OrderNumber
	s.ReconciliationRequired = false
	s.UpdatedAt = time.Now().UTC()
	if err := f.sessions.Save(ctx, s); err != nil {
		log.Printf("[checkout] ⚠️ failed to save completed session %s: %v", s.CartID, err)
	}
	if _, err := f.carts.RemovePurchased(ctx, s.CartID, s.Items); err != nil {
		log.Printf("[checkout] ⚠️ failed to settle cart %s: %v", s.CartID, err)
	}
	if err := f.reconcile.Resolve(context.WithoutCancel(ctx), order.PaymentIntentID); err != nil {
		log.Printf("[checkout] ⚠️ failed to resolve reconciliation entry %s: %v", order.PaymentIntentID, err)
	}
	log.Printf("[checkout] ✅ order %s complete for cart %s", order.OrderNumber, s.CartID)

	for _, n := range f.notifiers {
		n.OrderRecorded(ctx, order)
	}
}

func (f *Flow) flag(ctx context.Context, s *Session, intent *payments.Intent, cause error) {
	entry := ReconciliationEntry{
		PaymentIntentID: intent.ID,
		CartID:          s.CartID,
		AmountMinor:     intent.Amount,
		Currency:        intent.Currency,
		Reason:          cause.Error(),
		FlaggedAt:       time.Now().UTC(),
	}
	if s.Shipping != nil {
		entry.CustomerEmail = s.Shipping.Email
	}
	if err := f.reconcile.Flag(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("[checkout] ❌ failed to queue %s for reconciliation: %v", intent.ID, err)
		return
	}
	log.Printf("[checkout] ❌ intent %s queued for reconciliation: %v", intent.ID, cause)
}
