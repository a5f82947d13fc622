package orders

import (
	"net/mail"
	"strings"
)

// ValidateRequest checks an order request before any storage work. The same
// rules run client-side before submit and here authoritatively.
func ValidateRequest(customer CustomerDetails, items []ItemInput) error {
	if strings.TrimSpace(customer.Name) == "" ||
		strings.TrimSpace(customer.Email) == "" ||
		strings.TrimSpace(customer.Address) == "" {
		return validationf("customer details are required (name, email, and address)")
	}
	if _, err := mail.ParseAddress(customer.Email); err != nil {
		return validationf("invalid email address: %s", customer.Email)
	}
	if len(items) == 0 {
		return validationf("order must contain at least one item")
	}
	for _, it := range items {
		if it.ProductID <= 0 {
			return validationf("invalid product id: %d", it.ProductID)
		}
		if it.Quantity < 1 {
			return validationf("invalid quantity for product %d", it.ProductID)
		}
		if !it.Price.IsPositive() {
			return validationf("invalid price for product %d", it.ProductID)
		}
	}
	return nil
}
