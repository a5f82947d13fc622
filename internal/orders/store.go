package orders

import "context"

// Store is the order placement and lookup contract. Repo implements it on
// Postgres; MemStore implements it in memory for tests.
type Store interface {
	// PlaceOrder validates the request, persists the order and its items,
	// and reserves stock for every item, all inside one atomic unit. Either
	// the whole order commits or nothing does.
	PlaceOrder(ctx context.Context, customer CustomerDetails, items []ItemInput) (*PlacedOrder, error)

	GetOrder(ctx context.Context, id string) (*PlacedOrder, error)
	ListOrders(ctx context.Context) ([]PlacedOrder, error)

	// UpdateStatus moves an order along the status graph. Cancelling
	// restocks the order's items.
	UpdateStatus(ctx context.Context, id string, to Status) (*Order, error)
}
