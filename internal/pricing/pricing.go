// Package pricing derives display totals from a subtotal. It is pure: the
// same subtotal always yields the same quote, and the client-side quote must
// agree with the total the server computes from the same item list.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/yashdharmal/shopline/internal/money"
)

var (
	// Orders at or above the threshold ship free.
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShippingFee       = decimal.RequireFromString("5.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

// Quote is the price breakdown shown at checkout.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ForSubtotal computes shipping, tax and grand total for a subtotal.
// Tax applies to the subtotal only, not to shipping.
func ForSubtotal(subtotal decimal.Decimal) Quote {
	shipping := FlatShippingFee
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := money.Round2(subtotal.Mul(TaxRate))
	return Quote{
		Subtotal: money.Round2(subtotal),
		Shipping: shipping,
		Tax:      tax,
		Total:    money.Round2(subtotal.Add(shipping).Add(tax)),
	}
}
