package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	mu       sync.Mutex
	byIntent map[string]*models.Order
	failures int
	err      error
	calls    int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byIntent: make(map[string]*models.Order)}
}

func (f *fakeOrders) RecordPaidOrder(_ context.Context, d OrderDraft) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil && (f.failures < 0 || f.calls <= f.failures) {
		return nil, f.err
	}
	if o, ok := f.byIntent[d.PaymentIntentID]; ok {
		return o, nil
	}
	o := &models.Order{
		ID:              uuid.Must(uuid.NewV7()),
		OrderNumber:     "JP-TEST-" + d.PaymentIntentID,
		PaymentIntentID: d.PaymentIntentID,
		CustomerEmail:   d.Shipping.Email,
		Total:           d.Total,
		Currency:        d.Currency,
		Status:          models.OrderStatusPaid,
	}
	for _, it := range d.Items {
		o.Items = append(o.Items, models.OrderItem{PartID: it.PartID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	f.byIntent[d.PaymentIntentID] = o
	return o, nil
}

func (f *fakeOrders) FindByPaymentIntent(_ context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byIntent[id], nil
}

type recordingNotifier struct {
	orders []*models.Order
}

func (n *recordingNotifier) OrderRecorded(_ context.Context, o *models.Order) {
	n.orders = append(n.orders, o)
}

type harness struct {
	flow     *Flow
	carts    *cart.Store
	gateway  *payments.FakeGateway
	orders   *fakeOrders
	queue    *MemoryReconciliationQueue
	notifier *recordingNotifier
	sessions *MemorySessionStore
}

func newHarness() *harness {
	h := &harness{
		carts:    cart.NewStore(cart.NewMemoryPersister()),
		gateway:  payments.NewFakeGateway(),
		orders:   newFakeOrders(),
		queue:    &MemoryReconciliationQueue{},
		notifier: &recordingNotifier{},
		sessions: NewMemorySessionStore(),
	}
	h.flow = NewFlow(h.carts, h.sessions, h.gateway, h.orders, h.queue, Options{
		Currency:  "gbp",
		Notifiers: []OrderNotifier{h.notifier},
		Backoff: func() backoff.BackOff {
			return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
		},
	})
	return h
}

func (h *harness) add(t *testing.T, cartID, price string, qty int) cart.Item {
	t.Helper()
	item := cart.Item{PartID: uuid.Must(uuid.NewV7()), Name: "Part " + price, UnitPrice: decimal.RequireFromString(price), Quantity: 1}
	for i := 0; i < qty; i++ {
		_, err := h.carts.Dispatch(context.Background(), cartID, cart.AddItem{Item: item})
		require.NoError(t, err)
	}
	return item
}

func validShipping() ShippingInfo {
	return ShippingInfo{
		Name:         "Kenji Sato",
		Email:        "kenji@example.com",
		AddressLine1: "1 Skyline Way",
		City:         "Leeds",
		Postcode:     "LS1 1AA",
		Country:      "United Kingdom",
	}
}

func TestSubmitShippingRejectsEmptyCart(t *testing.T) {
	h := newHarness()
	s, err := h.flow.SubmitShipping(context.Background(), "empty", validShipping())
	assert.ErrorIs(t, err, ErrEmptyCart)
	require.NotNil(t, s)
	assert.Equal(t, PhaseShipping, s.Phase)
}

func TestSubmitShippingValidation(t *testing.T) {
	h := newHarness()
	h.add(t, "c1", "10.00", 1)

	info := validShipping()
	info.Postcode = "  "
	info.Email = "nope"
	s, err := h.flow.SubmitShipping(context.Background(), "c1", info)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "postcode")
	assert.Contains(t, verr.Fields, "email")
	assert.Equal(t, PhaseShipping, s.Phase)
}

func TestSubmitShippingAdvancesToPayment(t *testing.T) {
	h := newHarness()
	h.add(t, "c1", "10.00", 1)

	s, err := h.flow.SubmitShipping(context.Background(), "c1", validShipping())
	require.NoError(t, err)
	assert.Equal(t, PhasePayment, s.Phase)

	stored, err := h.sessions.Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "kenji@example.com", stored.Shipping.Email)
}

func TestStartPaymentRequiresShipping(t *testing.T) {
	h := newHarness()
	h.add(t, "c1", "10.00", 1)
	_, err := h.flow.StartPayment(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestStartPaymentAmountBounds(t *testing.T) {
	ctx := context.Background()

	h := newHarness()
	h.add(t, "cheap", "0.49", 1)
	_, err := h.flow.SubmitShipping(ctx, "cheap", validShipping())
	require.NoError(t, err)
	_, err = h.flow.StartPayment(ctx, "cheap")
	assert.ErrorIs(t, err, payments.ErrAmountOutOfRange)

	h.add(t, "big", "10000.01", 1)
	_, err = h.flow.SubmitShipping(ctx, "big", validShipping())
	require.NoError(t, err)
	_, err = h.flow.StartPayment(ctx, "big")
	assert.ErrorIs(t, err, payments.ErrAmountOutOfRange)

	assert.Empty(t, h.gateway.Created)
}

func TestStartPaymentReusesIntentForSameAmount(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.add(t, "c1", "25.50", 2)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)

	first, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(5100), first.Amount)
	assert.Equal(t, "gbp", first.Currency)
	assert.NotEmpty(t, first.ClientSecret)

	// Editing shipping keeps the intent.
	_, err = h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	second, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, first.PaymentIntentID, second.PaymentIntentID)
	require.Len(t, h.gateway.Created, 1)
	assert.Equal(t, "c1", h.gateway.Created[0].Metadata[MetadataCartID])
	assert.Equal(t, "kenji@example.com", *h.gateway.Created[0].ReceiptEmail)

	// A changed total needs a new intent.
	h.add(t, "c1", "1.00", 1)
	third, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	assert.NotEqual(t, first.PaymentIntentID, third.PaymentIntentID)
	assert.Equal(t, int64(5200), third.Amount)
}

func TestCompleteRequiresSucceededIntent(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.add(t, "c1", "30.00", 1)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)

	_, err = h.flow.Complete(ctx, "c1")
	var perr *PaymentStatusError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, start.PaymentIntentID, perr.PaymentIntentID)
	assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
	assert.Zero(t, h.orders.calls)
}

func TestCompleteRecordsOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.add(t, "c1", "100.00", 1)
	h.add(t, "c1", "50.00", 2)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	h.gateway.Succeed(start.PaymentIntentID)

	order, err := h.flow.Complete(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(200)))
	assert.Len(t, order.Items, 2)

	state, err := h.carts.Get(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())

	s, err := h.flow.Session(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, PhaseComplete, s.Phase)
	assert.Equal(t, order.OrderNumber, *s.OrderNumber)
	require.Len(t, h.notifier.orders, 1)

	// Completing again returns the same order without another write.
	again, err := h.flow.Complete(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, again.ID)
	assert.Equal(t, 1, h.orders.calls)
}

func TestCompleteRetriesTransientWriteFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.orders.err = errors.New("connection reset")
	h.orders.failures = 2
	h.add(t, "c1", "20.00", 1)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	h.gateway.Succeed(start.PaymentIntentID)

	order, err := h.flow.Complete(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, start.PaymentIntentID, order.PaymentIntentID)
	assert.Equal(t, 3, h.orders.calls)

	pending, err := h.queue.Pending(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCompleteKeepsCartWhenOrderWriteFails(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.orders.err = errors.New("database unavailable")
	h.orders.failures = -1
	h.add(t, "c1", "80.00", 1)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	h.gateway.Succeed(start.PaymentIntentID)

	_, err = h.flow.Complete(ctx, "c1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderNotRecorded)
	var nerr *OrderNotRecordedError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, start.PaymentIntentID, nerr.PaymentIntentID)
	assert.Equal(t, 4, h.orders.calls)

	state, err := h.carts.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.ItemCount())

	s, err := h.flow.Session(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, s.ReconciliationRequired)
	assert.Equal(t, PhasePayment, s.Phase)

	pending, err := h.queue.Pending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, start.PaymentIntentID, pending[0].PaymentIntentID)
	assert.Equal(t, "kenji@example.com", pending[0].CustomerEmail)
	assert.Empty(t, h.notifier.orders)

	// A second failed attempt keeps one entry for the intent.
	_, err = h.flow.Complete(ctx, "c1")
	assert.ErrorIs(t, err, ErrOrderNotRecorded)
	pending, err = h.queue.Pending(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	// Once the database recovers a retry of Complete records the order and
	// drains the queue.
	h.orders.err = nil
	order, err := h.flow.Complete(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, start.PaymentIntentID, order.PaymentIntentID)

	pending, err = h.queue.Pending(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestStartPaymentRefusesNewIntentAfterUnrecordedCharge(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.orders.err = errors.New("database unavailable")
	h.orders.failures = -1
	first := h.add(t, "c1", "80.00", 1)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	h.gateway.Succeed(start.PaymentIntentID)

	_, err = h.flow.Complete(ctx, "c1")
	require.ErrorIs(t, err, ErrOrderNotRecorded)

	// The customer changes the cart and presses pay again.
	h.add(t, "c1", "20.00", 1)
	_, err = h.flow.StartPayment(ctx, "c1")
	assert.ErrorIs(t, err, ErrInvalidPhase)
	var received *PaymentReceivedError
	require.True(t, errors.As(err, &received))
	assert.Equal(t, start.PaymentIntentID, received.PaymentIntentID)
	assert.Len(t, h.gateway.Created, 1)

	// Complete records the original charge for the original items only.
	h.orders.err = nil
	order, err := h.flow.Complete(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, start.PaymentIntentID, order.PaymentIntentID)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(80)))
	require.Len(t, order.Items, 1)
	assert.Equal(t, first.PartID, order.Items[0].PartID)

	// The part added afterwards is still in the cart.
	state, err := h.carts.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.ItemCount())
	assert.True(t, state.Total().Equal(decimal.NewFromInt(20)))
}

func TestStartPaymentRefusesWhenIntentAlreadyCharged(t *testing.T) {
	for _, status := range []string{payments.StatusSucceeded, payments.StatusProcessing} {
		t.Run(status, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness()
			h.add(t, "c1", "40.00", 1)
			_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
			require.NoError(t, err)
			start, err := h.flow.StartPayment(ctx, "c1")
			require.NoError(t, err)
			h.gateway.SetStatus(start.PaymentIntentID, status)

			// Charged before Complete ran; a changed total must not mint a new intent.
			h.add(t, "c1", "5.00", 1)
			_, err = h.flow.StartPayment(ctx, "c1")
			var received *PaymentReceivedError
			require.True(t, errors.As(err, &received))
			assert.Len(t, h.gateway.Created, 1)
		})
	}
}

func TestCompleteKeepsLinesAddedAfterPaymentStarted(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.add(t, "c1", "30.00", 2)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)

	late := h.add(t, "c1", "9.99", 1)
	h.gateway.Succeed(start.PaymentIntentID)

	order, err := h.flow.Complete(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(60)))

	state, err := h.carts.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 1, state.ItemCount())
	_, ok := state.Get(late.PartID)
	assert.True(t, ok)
}

func TestReconcileIntentFromWebhook(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.add(t, "c1", "45.00", 1)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	h.gateway.Succeed(start.PaymentIntentID)

	intent, err := h.gateway.GetPaymentIntent(ctx, start.PaymentIntentID)
	require.NoError(t, err)

	order, err := h.flow.ReconcileIntent(ctx, intent)
	require.NoError(t, err)
	assert.Equal(t, start.PaymentIntentID, order.PaymentIntentID)

	// The browser's Complete call after the webhook sees the same order.
	again, err := h.flow.Complete(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, again.ID)
	assert.Equal(t, 1, h.orders.calls)
}

func TestReconcileIntentWithoutSessionIsQueued(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	intent := &payments.Intent{
		ID:       "pi_orphan",
		Status:   payments.StatusSucceeded,
		Amount:   1999,
		Currency: "gbp",
		Metadata: map[string]string{MetadataCartID: "gone"},
	}

	_, err := h.flow.ReconcileIntent(ctx, intent)
	assert.ErrorIs(t, err, ErrOrderNotRecorded)

	pending, err := h.queue.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pi_orphan", pending[0].PaymentIntentID)
	assert.Equal(t, int64(1999), pending[0].AmountMinor)
}

func TestSubmitShippingAfterCompleteStartsOver(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.add(t, "c1", "60.00", 1)
	_, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	start, err := h.flow.StartPayment(ctx, "c1")
	require.NoError(t, err)
	h.gateway.Succeed(start.PaymentIntentID)
	_, err = h.flow.Complete(ctx, "c1")
	require.NoError(t, err)

	h.add(t, "c1", "12.00", 1)
	s, err := h.flow.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	assert.Equal(t, PhasePayment, s.Phase)
	assert.Nil(t, s.PaymentIntentID)
	assert.Nil(t, s.OrderNumber)
}
