package analytics_controller

import (
	"testing"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillMonthsSpansYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC)
	rows := []models.MonthlyRevenueData{
		{Month: "2025-12", Orders: 3, Revenue: decimal.RequireFromString("420.00")},
		{Month: "2026-02", Orders: 1, Revenue: decimal.RequireFromString("89.99")},
	}

	got := fillMonths(rows, now, 12)
	require.Len(t, got, 12)
	assert.Equal(t, "2025-03", got[0].Month)
	assert.Equal(t, "Mar", got[0].Label)
	assert.Equal(t, "2026-02", got[11].Month)
	assert.True(t, got[11].Revenue.Equal(decimal.RequireFromString("89.99")))

	dec := got[9]
	assert.Equal(t, "2025-12", dec.Month)
	assert.Equal(t, "Dec", dec.Label)
	assert.Equal(t, int64(3), dec.Orders)

	jan := got[10]
	assert.Equal(t, "2026-01", jan.Month)
	assert.True(t, jan.Revenue.IsZero())
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 0.0, percentOf(decimal.NewFromInt(5), decimal.Zero))
	assert.Equal(t, 33.3, percentOf(decimal.NewFromInt(1), decimal.NewFromInt(3)))
	assert.Equal(t, 100.0, percentOf(decimal.NewFromInt(7), decimal.NewFromInt(7)))
}
