package orders

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validCustomer() CustomerDetails {
	return CustomerDetails{Name: "Jane Doe", Email: "jane@example.com", Address: "1 Main St, Springfield"}
}

func validItems() []ItemInput {
	return []ItemInput{{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")}}
}

func TestValidateRequest(t *testing.T) {
	if err := ValidateRequest(validCustomer(), validItems()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name     string
		customer CustomerDetails
		items    []ItemInput
	}{
		{"missing name", CustomerDetails{Email: "a@b.com", Address: "x y z a b"}, validItems()},
		{"missing email", CustomerDetails{Name: "A", Address: "x y z a b"}, validItems()},
		{"missing address", CustomerDetails{Name: "A", Email: "a@b.com"}, validItems()},
		{"bad email", CustomerDetails{Name: "A", Email: "not-an-email", Address: "x y z a b"}, validItems()},
		{"empty items", validCustomer(), nil},
		{"zero quantity", validCustomer(), []ItemInput{{ProductID: 1, Quantity: 0, Price: decimal.NewFromInt(1)}}},
		{"zero price", validCustomer(), []ItemInput{{ProductID: 1, Quantity: 1, Price: decimal.Zero}}},
		{"bad product id", validCustomer(), []ItemInput{{ProductID: 0, Quantity: 1, Price: decimal.NewFromInt(1)}}},
	}
	for _, tc := range cases {
		err := ValidateRequest(tc.customer, tc.items)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestTotalAmount(t *testing.T) {
	items := []ItemInput{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("5.00")},
	}
	if total := TotalAmount(items); !total.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("expected 25.00, got %s", total)
	}

	// no drift beyond cents on awkward unit prices
	items = []ItemInput{{ProductID: 1, Quantity: 3, Price: decimal.RequireFromString("0.10")}}
	if total := TotalAmount(items); !total.Equal(decimal.RequireFromString("0.30")) {
		t.Fatalf("expected 0.30, got %s", total)
	}
}
