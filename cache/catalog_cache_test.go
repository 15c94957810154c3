package catalog_cache

import (
	"testing"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersCacheLifecycle(t *testing.T) {
	Invalidate()
	_, ok := GetFilters()
	assert.False(t, ok)

	meta := &models.PartFilterMetadata{Brands: []models.FacetCount{{Value: "HKS", Count: 3}}}
	SetFilters(meta)
	got, ok := GetFilters()
	require.True(t, ok)
	assert.Equal(t, "HKS", got.Brands[0].Value)

	Invalidate()
	_, ok = GetFilters()
	assert.False(t, ok)
}

func TestFiltersCacheExpires(t *testing.T) {
	SetFilters(&models.PartFilterMetadata{})
	filtersMu.Lock()
	filtersCache.fetchedAt = time.Now().Add(-TTL - time.Second)
	filtersMu.Unlock()

	_, ok := GetFilters()
	assert.False(t, ok)
}

func TestVehiclesCache(t *testing.T) {
	Invalidate()
	SetVehicles([]models.Vehicle{{Make: "Mazda", Model: "RX-7 FD", YearFrom: 1992}})
	got, ok := GetVehicles()
	require.True(t, ok)
	assert.Len(t, got, 1)

	Invalidate()
	_, ok = GetVehicles()
	assert.False(t, ok)
}
