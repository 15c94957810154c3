package models

import "github.com/shopspring/decimal"

// SettledOrderStatuses are the statuses that count as revenue.
var SettledOrderStatuses = []string{OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered}

type MonthlyRevenueData struct {
	Month   string          `json:"month"` // YYYY-MM
	Label   string          `json:"label"` // Jan, Feb ...
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue" swaggertype:"string"`
}

// TopPart is a best seller over the requested window.
type TopPart struct {
	PartID         string          `json:"part_id"`
	PartName       string          `json:"part_name"`
	OrderCount     int64           `json:"order_count"`
	UnitsSold      int64           `json:"units_sold"`
	Revenue        decimal.Decimal `json:"revenue" swaggertype:"string"`
	RevenuePercent float64         `json:"revenue_percent"`
}

type CountryOrders struct {
	Country    string  `json:"country"`
	OrderCount int64   `json:"order_count"`
	Percentage float64 `json:"percentage"`
}
