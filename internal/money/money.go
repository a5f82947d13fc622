// Package money fixes the arithmetic conventions for amounts stored as
// NUMERIC(10,2): two decimal places, half-up rounding, marshaled as JSON
// numbers.
package money

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Round2 rounds to two decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Line is the amount of one order line: unit price times quantity.
func Line(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// FromFloat converts a float literal to a two-decimal amount. Only for
// trusted constants such as seed data; parse wire input with decimal
// directly.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
