package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yashdharmal/shopline/internal/catalog"
	"github.com/yashdharmal/shopline/internal/money"
)

type Order struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerAddress string          `json:"customerAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem snapshots quantity and unit price at order time. Price is never
// re-read from the product row afterwards; later price changes must not
// rewrite history.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	// Product is populated on reads for display, not on writes.
	Product *catalog.Product `json:"product,omitempty"`
}

type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ItemInput is one requested line of an order. Price is the client-quoted
// unit price; it becomes the snapshot price on the order item.
type ItemInput struct {
	ProductID int64           `json:"id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PlacedOrder is an order together with its items, as persisted.
type PlacedOrder struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"orderItems"`
}

// TotalAmount computes the order total from its inputs: sum of unit price
// times quantity, in cents-exact decimal arithmetic.
func TotalAmount(items []ItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(money.Line(it.Price, it.Quantity))
	}
	return money.Round2(total)
}
