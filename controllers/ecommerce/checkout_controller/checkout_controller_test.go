package checkout_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOrders struct {
	mu       sync.Mutex
	byIntent map[string]*models.Order
	err      error
}

func (s *stubOrders) RecordPaidOrder(_ context.Context, d checkout.OrderDraft) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	o := &models.Order{
		ID:              uuid.Must(uuid.NewV7()),
		OrderNumber:     "JP-TEST-0001",
		PaymentIntentID: d.PaymentIntentID,
		CustomerEmail:   d.Shipping.Email,
		Total:           d.Total,
		Currency:        d.Currency,
		Status:          models.OrderStatusPaid,
	}
	s.byIntent[d.PaymentIntentID] = o
	return o, nil
}

func (s *stubOrders) FindByPaymentIntent(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byIntent[id], nil
}

type env struct {
	t       *testing.T
	router  *gin.Engine
	carts   *cart.Store
	gateway *payments.FakeGateway
	orders  *stubOrders
	queue   *checkout.MemoryReconciliationQueue
	cookie  *http.Cookie
}

func newEnv(t *testing.T) *env {
	e := &env{
		t:       t,
		carts:   cart.NewStore(cart.NewMemoryPersister()),
		gateway: payments.NewFakeGateway(),
		orders:  &stubOrders{byIntent: map[string]*models.Order{}},
		queue:   &checkout.MemoryReconciliationQueue{},
	}
	flow := checkout.NewFlow(e.carts, checkout.NewMemorySessionStore(), e.gateway, e.orders, e.queue, checkout.Options{
		Currency: "gbp",
		Backoff: func() backoff.BackOff {
			return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1)
		},
	})

	r := gin.New()
	g := r.Group("/checkout", middleware.CartSession(false))
	g.GET("", GetCheckout(flow))
	g.POST("/shipping", SubmitShipping(flow))
	g.POST("/payment", StartPayment(flow))
	g.POST("/complete", CompleteCheckout(flow))
	e.router = r
	return e
}

func (e *env) do(method, path, body string) (int, models.ApiResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.CartCookie {
			e.cookie = ck
		}
	}
	var resp models.ApiResponse
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

// fillCart establishes the cookie and puts one line in that cart.
func (e *env) fillCart(price string) {
	e.do(http.MethodGet, "/checkout", "")
	require.NotNil(e.t, e.cookie)
	_, err := e.carts.Dispatch(context.Background(), e.cookie.Value, cart.AddItem{Item: cart.Item{
		PartID:    uuid.Must(uuid.NewV7()),
		Name:      "HKS Intake",
		UnitPrice: decimal.RequireFromString(price),
	}})
	require.NoError(e.t, err)
}

const shippingJSON = `{"name":"Kenji Sato","email":"kenji@example.com","address_line1":"1 Skyline Way","city":"Leeds","postcode":"LS1 1AA","country":"United Kingdom"}`

func dataMap(t *testing.T, resp models.ApiResponse) map[string]any {
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func TestCheckoutHappyPath(t *testing.T) {
	e := newEnv(t)
	e.fillCart("120.50")

	code, resp := e.do(http.MethodPost, "/checkout/shipping", shippingJSON)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "payment", dataMap(t, resp)["phase"])

	code, resp = e.do(http.MethodPost, "/checkout/payment", "")
	require.Equal(t, http.StatusOK, code)
	start := dataMap(t, resp)
	assert.EqualValues(t, 12050, start["amount"])
	intentID := start["payment_intent_id"].(string)
	assert.NotEmpty(t, start["client_secret"])

	code, resp = e.do(http.MethodPost, "/checkout/complete", "")
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.True(t, resp.Error)

	e.gateway.Succeed(intentID)
	code, resp = e.do(http.MethodPost, "/checkout/complete", "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "JP-TEST-0001", dataMap(t, resp)["order_number"])

	state, err := e.carts.Get(context.Background(), e.cookie.Value)
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
}

func TestCheckoutShippingErrors(t *testing.T) {
	e := newEnv(t)

	code, resp := e.do(http.MethodPost, "/checkout/shipping", shippingJSON)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Your cart is empty", resp.Message)

	e.fillCart("10.00")
	code, resp = e.do(http.MethodPost, "/checkout/shipping", `{"name":"Kenji","email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, code)
	fields := dataMap(t, resp)["fields"].(map[string]any)
	assert.Equal(t, "must be an email address", fields["email"])
	assert.Equal(t, "is required", fields["postcode"])
	assert.Equal(t, "is required", fields["address_line1"])
}

func TestCheckoutPhaseOrdering(t *testing.T) {
	e := newEnv(t)
	e.fillCart("10.00")

	code, _ := e.do(http.MethodPost, "/checkout/payment", "")
	assert.Equal(t, http.StatusConflict, code)

	code, _ = e.do(http.MethodPost, "/checkout/complete", "")
	assert.Equal(t, http.StatusConflict, code)
}

func TestCheckoutGatewayFailure(t *testing.T) {
	e := newEnv(t)
	e.fillCart("10.00")
	e.do(http.MethodPost, "/checkout/shipping", shippingJSON)

	e.gateway.FailWith = payments.ErrGateway
	code, _ := e.do(http.MethodPost, "/checkout/payment", "")
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestCheckoutAmountBelowMinimum(t *testing.T) {
	e := newEnv(t)
	e.fillCart("0.30")
	e.do(http.MethodPost, "/checkout/shipping", shippingJSON)

	code, _ := e.do(http.MethodPost, "/checkout/payment", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Empty(t, e.gateway.Created)
}

func TestCheckoutOrderNotRecorded(t *testing.T) {
	e := newEnv(t)
	e.fillCart("60.00")
	e.do(http.MethodPost, "/checkout/shipping", shippingJSON)
	_, resp := e.do(http.MethodPost, "/checkout/payment", "")
	intentID := dataMap(t, resp)["payment_intent_id"].(string)
	e.gateway.Succeed(intentID)
	e.orders.err = errors.New("database unavailable")

	code, resp := e.do(http.MethodPost, "/checkout/complete", "")
	require.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, resp.Message, intentID)
	assert.Equal(t, intentID, dataMap(t, resp)["payment_intent_id"])

	pending, err := e.queue.Pending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, intentID, pending[0].PaymentIntentID)

	state, err := e.carts.Get(context.Background(), e.cookie.Value)
	require.NoError(t, err)
	assert.False(t, state.IsEmpty(), "cart survives an unrecorded order")

	code, resp = e.do(http.MethodPost, "/checkout/payment", "")
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "/api/v1/checkout/complete", dataMap(t, resp)["next"])
	assert.Equal(t, intentID, dataMap(t, resp)["payment_intent_id"])
	assert.Len(t, e.gateway.Created, 1)

	e.orders.err = nil
	code, _ = e.do(http.MethodPost, "/checkout/complete", "")
	require.Equal(t, http.StatusCreated, code)
	pending, err = e.queue.Pending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
