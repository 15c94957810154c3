package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyCart           = errors.New("your cart is empty")
	ErrInvalidPhase        = errors.New("checkout is not at this step")
	ErrValidation          = errors.New("invalid shipping details")
	ErrPaymentNotConfirmed = errors.New("payment has not been confirmed")
	ErrOrderNotRecorded    = errors.New("payment received but the order could not be recorded")
)

// ValidationError lists the shipping fields that failed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PaymentStatusError reports an intent that has not succeeded yet.
type PaymentStatusError struct {
	PaymentIntentID string
	Status          string
}

func (e *PaymentStatusError) Error() string {
	return fmt.Sprintf("%s: intent %s is %s", ErrPaymentNotConfirmed, e.PaymentIntentID, e.Status)
}

func (e *PaymentStatusError) Unwrap() error { return ErrPaymentNotConfirmed }

// PaymentReceivedError is returned by StartPayment when the session's intent
// is already charged. The client must finish with Complete instead of paying
// again.
type PaymentReceivedError struct {
	PaymentIntentID string
}

func (e *PaymentReceivedError) Error() string {
	return fmt.Sprintf("%s: payment %s already received, complete the checkout", ErrInvalidPhase, e.PaymentIntentID)
}

func (e *PaymentReceivedError) Unwrap() error { return ErrInvalidPhase }

// OrderNotRecordedError is returned when the charge succeeded but the order
// write kept failing. The cart is left intact and the intent is queued for
// manual reconciliation.
type OrderNotRecordedError struct {
	PaymentIntentID string
	Err             error
}

func (e *OrderNotRecordedError) Error() string {
	return fmt.Sprintf("%s (payment reference %s): %v", ErrOrderNotRecorded, e.PaymentIntentID, e.Err)
}

func (e *OrderNotRecordedError) Unwrap() []error { return []error{ErrOrderNotRecorded, e.Err} }
