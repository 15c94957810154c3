package order_controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatusStampsMilestonesOnce(t *testing.T) {
	paidAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	order := &models.Order{Status: models.OrderStatusPaid, PaidAt: &paidAt}
	applyStatus(order, models.OrderStatusShipped, now)

	assert.Equal(t, models.OrderStatusShipped, order.Status)
	assert.Equal(t, paidAt, *order.PaidAt)
	require.NotNil(t, order.ShippedAt)
	assert.Equal(t, now, *order.ShippedAt)
	assert.Nil(t, order.DeliveredAt)

	later := now.Add(48 * time.Hour)
	applyStatus(order, models.OrderStatusDelivered, later)
	assert.Equal(t, now, *order.ShippedAt)
	assert.Equal(t, later, *order.DeliveredAt)
}

func TestApplyStatusBackfillsSkippedMilestones(t *testing.T) {
	now := time.Now().UTC()
	order := &models.Order{Status: models.OrderStatusPending}
	applyStatus(order, models.OrderStatusDelivered, now)

	require.NotNil(t, order.PaidAt)
	require.NotNil(t, order.ShippedAt)
	require.NotNil(t, order.DeliveredAt)
}

func TestReconciliationEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	queue := &checkout.MemoryReconciliationQueue{}
	require.NoError(t, queue.Flag(context.Background(), checkout.ReconciliationEntry{
		PaymentIntentID: "pi_123",
		AmountMinor:     25998,
		Currency:        "gbp",
		Reason:          "order write failed",
	}))
	Init(nil, nil, queue)
	t.Cleanup(func() { Init(nil, nil, nil) })

	r := gin.New()
	r.GET("/admin/orders/reconciliation", GetReconciliationQueue)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders/reconciliation", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []checkout.ReconciliationEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "pi_123", body.Data[0].PaymentIntentID)
}

func TestResolveReconciliationRemovesEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	queue := &checkout.MemoryReconciliationQueue{}
	ctx := context.Background()
	for _, id := range []string{"pi_123", "pi_456"} {
		require.NoError(t, queue.Flag(ctx, checkout.ReconciliationEntry{PaymentIntentID: id, Currency: "gbp"}))
	}
	Init(nil, nil, queue)
	t.Cleanup(func() { Init(nil, nil, nil) })

	r := gin.New()
	r.DELETE("/admin/orders/reconciliation/:intentId", ResolveReconciliation)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/orders/reconciliation/pi_123", nil))
	require.Equal(t, http.StatusOK, w.Code)

	pending, err := queue.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pi_456", pending[0].PaymentIntentID)
}

func TestUnconfiguredCollaboratorsAnswer503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init(nil, nil, nil)

	r := gin.New()
	r.GET("/admin/orders/live", LiveOrders)
	r.GET("/admin/orders/reconciliation", GetReconciliationQueue)
	r.POST("/admin/orders/:id/send-invoice", SendOrderInvoice)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin/orders/live", nil),
		httptest.NewRequest(http.MethodGet, "/admin/orders/reconciliation", nil),
		httptest.NewRequest(http.MethodPost, "/admin/orders/0190a1b2-0000-7000-8000-000000000000/send-invoice", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, req.URL.Path)
	}
}
