package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFreeShippingBoundary(t *testing.T) {
	q := ForSubtotal(dec("50.00"))
	if !q.Shipping.IsZero() {
		t.Fatalf("subtotal 50.00: expected free shipping, got %s", q.Shipping)
	}

	q = ForSubtotal(dec("49.99"))
	if !q.Shipping.Equal(dec("5.99")) {
		t.Fatalf("subtotal 49.99: expected shipping 5.99, got %s", q.Shipping)
	}
}

func TestCartScenario(t *testing.T) {
	// two items: 10.00 x2 and 5.00 x1
	q := ForSubtotal(dec("25.00"))
	if !q.Subtotal.Equal(dec("25.00")) {
		t.Fatalf("subtotal: got %s", q.Subtotal)
	}
	if !q.Tax.Equal(dec("2.00")) {
		t.Fatalf("tax: expected 2.00, got %s", q.Tax)
	}
	if !q.Shipping.Equal(dec("5.99")) {
		t.Fatalf("shipping: expected 5.99, got %s", q.Shipping)
	}
	if !q.Total.Equal(dec("32.99")) {
		t.Fatalf("total: expected 32.99, got %s", q.Total)
	}
}

func TestTaxExcludesShipping(t *testing.T) {
	q := ForSubtotal(dec("10.00"))
	if !q.Tax.Equal(dec("0.80")) {
		t.Fatalf("tax must apply to subtotal only: got %s", q.Tax)
	}
}

func TestIdempotent(t *testing.T) {
	a := ForSubtotal(dec("49.99"))
	b := ForSubtotal(dec("49.99"))
	if !a.Shipping.Equal(b.Shipping) || !a.Tax.Equal(b.Tax) || !a.Total.Equal(b.Total) {
		t.Fatalf("identical inputs must quote identically: %+v vs %+v", a, b)
	}
}

func TestRounding(t *testing.T) {
	// 8% of 10.55 is 0.844; the quote must settle on cents.
	q := ForSubtotal(dec("10.55"))
	if !q.Tax.Equal(dec("0.84")) {
		t.Fatalf("tax: expected 0.84, got %s", q.Tax)
	}
	if !q.Total.Equal(dec("17.38")) {
		t.Fatalf("total: expected 17.38, got %s", q.Total)
	}
}
