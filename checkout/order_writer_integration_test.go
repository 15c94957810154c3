//go:build integration
// +build integration

package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/internal/testdb"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderWriterRecordsOnceAndDecrementsStock(t *testing.T) {
	db, _ := testdb.Start(t)
	ctx := context.Background()

	part := &models.Part{
		Name:          "Nismo Oil Cap",
		Slug:          "nismo-oil-cap",
		Category:      "engine",
		Brand:         "Nismo",
		Price:         decimal.RequireFromString("39.99"),
		StockQuantity: 2,
	}
	require.NoError(t, db.Create(part).Error)

	writer := NewGormOrderWriter(db)
	draft := OrderDraft{
		PaymentIntentID: "pi_integration_1",
		Shipping:        validShipping(),
		Items: []cart.Item{{
			PartID:    part.ID,
			Name:      part.Name,
			UnitPrice: part.Price,
			Quantity:  3,
		}},
		Total:    decimal.RequireFromString("119.97"),
		Currency: "gbp",
	}

	var wg sync.WaitGroup
	results := make([]*models.Order, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = writer.RecordPaidOrder(ctx, draft)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].ID, results[i].ID)
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("payment_intent_id = ?", "pi_integration_1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	order, err := writer.FindByPaymentIntent(ctx, "pi_integration_1")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.NotNil(t, order.PaidAt)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.RequireFromString("119.97")))

	var reloaded models.Part
	require.NoError(t, db.First(&reloaded, "id = ?", part.ID).Error)
	assert.Equal(t, 0, reloaded.StockQuantity)
	assert.Equal(t, models.AvailabilityOutOfStock, reloaded.Availability)
}

func TestGormOrderWriterUnknownIntent(t *testing.T) {
	db, _ := testdb.Start(t)
	order, err := NewGormOrderWriter(db).FindByPaymentIntent(context.Background(), "pi_missing")
	require.NoError(t, err)
	assert.Nil(t, order)
}
