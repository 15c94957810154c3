package analytics_controller

import (
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/shopspring/decimal"
)

const monthKeyLayout = "2006-01"

// fillMonths returns exactly n months ending with the month of now, taking
// figures from rows and zero for months without sales.
func fillMonths(rows []models.MonthlyRevenueData, now time.Time, n int) []models.MonthlyRevenueData {
	byMonth := make(map[string]models.MonthlyRevenueData, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	out := make([]models.MonthlyRevenueData, 0, n)
	for i := 0; i < n; i++ {
		month := first.AddDate(0, i, 0)
		key := month.Format(monthKeyLayout)
		row, ok := byMonth[key]
		if !ok {
			row = models.MonthlyRevenueData{Month: key, Revenue: decimal.Zero}
		}
		row.Label = month.Format("Jan")
		out = append(out, row)
	}
	return out
}

// percentOf is part/whole as a percentage rounded to one decimal place.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
