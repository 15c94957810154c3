package catalog_cache

import (
	"sync"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
)

const TTL = 5 * time.Minute

// ── Filter sidebar cache ─────────────────────────────────────────────────────
// Facet counts and price range for GET /store/parts/filters.

type filtersEntry struct {
	data      *models.PartFilterMetadata
	fetchedAt time.Time
}

var (
	filtersMu    sync.RWMutex
	filtersCache *filtersEntry
)

func GetFilters() (*models.PartFilterMetadata, bool) {
	filtersMu.RLock()
	defer filtersMu.RUnlock()
	if filtersCache != nil && time.Since(filtersCache.fetchedAt) < TTL {
		return filtersCache.data, true
	}
	return nil, false
}

func SetFilters(data *models.PartFilterMetadata) {
	filtersMu.Lock()
	defer filtersMu.Unlock()
	filtersCache = &filtersEntry{data: data, fetchedAt: time.Now()}
}

// ── Vehicle list cache ───────────────────────────────────────────────────────

type vehiclesEntry struct {
	data      []models.Vehicle
	fetchedAt time.Time
}

var (
	vehiclesMu    sync.RWMutex
	vehiclesCache *vehiclesEntry
)

func GetVehicles() ([]models.Vehicle, bool) {
	vehiclesMu.RLock()
	defer vehiclesMu.RUnlock()
	if vehiclesCache != nil && time.Since(vehiclesCache.fetchedAt) < TTL {
		return vehiclesCache.data, true
	}
	return nil, false
}

func SetVehicles(data []models.Vehicle) {
	vehiclesMu.Lock()
	defer vehiclesMu.Unlock()
	vehiclesCache = &vehiclesEntry{data: data, fetchedAt: time.Now()}
}

// ── Invalidate everything (call on any part or vehicle write) ────────────────

func Invalidate() {
	filtersMu.Lock()
	filtersCache = nil
	filtersMu.Unlock()

	vehiclesMu.Lock()
	vehiclesCache = nil
	vehiclesMu.Unlock()
}
