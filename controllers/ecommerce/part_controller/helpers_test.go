package part_controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextFor(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/store/parts?"+rawQuery, nil)
	return c
}

func TestBuildStorefrontOrderClause(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder, want string
	}{
		{"price", "asc", "p.price ASC, p.id"},
		{"price", "desc", "p.price DESC, p.id"},
		{"name", "ASC", "p.name ASC, p.id"},
		{"newest", "", "p.created_at DESC, p.id"},
		{"p.price; DROP TABLE parts", "asc", "p.created_at DESC, p.id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, buildStorefrontOrderClause(tt.sortBy, tt.sortOrder), tt.sortBy)
	}
}

func TestParsePartFilter(t *testing.T) {
	c := contextFor(t, "q=turbo&brand=HKS&brand=%20Garrett%20&year=2001&minPrice=10.50&maxPrice=abc&limit=500&page=0")
	f := parsePartFilter(c)

	require.NotNil(t, f.Search)
	assert.Equal(t, "turbo", *f.Search)
	assert.Equal(t, []string{"HKS", "Garrett"}, f.Brands)
	require.NotNil(t, f.Year)
	assert.Equal(t, 2001, *f.Year)
	require.NotNil(t, f.MinPrice)
	assert.True(t, f.MinPrice.Equal(decimal.RequireFromString("10.5")))
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.Category)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, defaultStorefrontLimit, f.Limit)
	assert.Equal(t, "newest", f.SortBy)
}

func TestBuildPartWhere(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		where, args := buildPartWhere(parsePartFilter(contextFor(t, "")))
		assert.Equal(t, "1 = 1", where)
		assert.Empty(t, args)
	})

	t.Run("vehicle fitment", func(t *testing.T) {
		where, args := buildPartWhere(parsePartFilter(contextFor(t, "make=Nissan&model=Skyline&year=1999")))
		assert.Contains(t, where, "FROM part_vehicles pv")
		assert.Contains(t, where, "v.year_from <= ?")
		assert.Equal(t, []any{"Nissan", "Skyline", 1999, 1999}, args)
	})

	t.Run("search and brands keep argument order", func(t *testing.T) {
		where, args := buildPartWhere(parsePartFilter(contextFor(t, "q=exhaust&brand=HKS&brand=Tomei&availability=in_stock")))
		assert.Contains(t, where, "LOWER(p.brand) IN (LOWER(?),LOWER(?))")
		assert.Contains(t, where, "p.availability IN ('in_stock', 'rare_find')")
		assert.Equal(t, []any{"%exhaust%", "%exhaust%", "%exhaust%", "HKS", "Tomei"}, args)
	})

	t.Run("search wildcards are escaped", func(t *testing.T) {
		where, args := buildPartWhere(parsePartFilter(contextFor(t, "q=50%25_off")))
		assert.Contains(t, where, `p.name ILIKE ? ESCAPE '\'`)
		assert.Equal(t, []any{`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`}, args)
	})

	t.Run("unknown availability ignored", func(t *testing.T) {
		where, _ := buildPartWhere(parsePartFilter(contextFor(t, "availability=sometimes")))
		assert.Equal(t, "1 = 1", where)
	})
}
