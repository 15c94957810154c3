package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount (pounds) to minor units (pence),
// rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts pence back to pounds.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// FormatMoney renders an amount with its currency symbol for emails and PDFs.
func FormatMoney(amount decimal.Decimal, currency string) string {
	switch currency {
	case "gbp", "GBP":
		return "£" + amount.StringFixed(2)
	case "eur", "EUR":
		return "€" + amount.StringFixed(2)
	case "usd", "USD":
		return "$" + amount.StringFixed(2)
	default:
		return amount.StringFixed(2) + " " + currency
	}
}
