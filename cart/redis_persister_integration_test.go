//go:build integration
// +build integration

package cart

import (
	"context"
	"testing"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/internal/testredis"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPersisterRoundTrip(t *testing.T) {
	rdb := testredis.Start(t)
	ctx := context.Background()
	p := NewRedisPersister(rdb, time.Hour)

	items, err := p.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, items)

	saved := []Item{{
		PartID:    uuid.New(),
		Name:      "HKS Oil Filter",
		Slug:      "hks-oil-filter",
		UnitPrice: decimal.RequireFromString("14.50"),
		Quantity:  2,
	}}
	require.NoError(t, p.Save(ctx, "cart-1", saved))

	ttl, err := rdb.TTL(ctx, KeyPrefix+"cart-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	loaded, err := p.Load(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, saved[0].PartID, loaded[0].PartID)
	assert.True(t, loaded[0].UnitPrice.Equal(saved[0].UnitPrice))
	assert.Equal(t, 2, loaded[0].Quantity)

	require.NoError(t, p.Delete(ctx, "cart-1"))
	loaded, err = p.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisPersisterDiscardsCorruptCart(t *testing.T) {
	rdb := testredis.Start(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, KeyPrefix+"broken", "{not json", 0).Err())

	items, err := NewRedisPersister(rdb, 0).Load(ctx, "broken")
	require.NoError(t, err)
	assert.Empty(t, items)
}
