package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yashdharmal/shopline/internal/catalog"
)

// MemStore is an in-memory Store with the same all-or-nothing semantics as
// Repo. One mutex plays the role of the database transaction: checks and
// decrements for a placement are a single critical section.
type MemStore struct {
	mu       sync.Mutex
	products map[int64]*catalog.Product
	orders   map[string]*PlacedOrder
	ids      []string
	nextItem int64
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		products: make(map[int64]*catalog.Product),
		orders:   make(map[string]*PlacedOrder),
	}
}

func (s *MemStore) SeedProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.products[p.ID] = &cp
}

// ProductStock reports current stock, or -1 for an unknown product.
func (s *MemStore) ProductStock(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return -1
	}
	return p.Stock
}

func (s *MemStore) PlaceOrder(ctx context.Context, customer CustomerDetails, items []ItemInput) (*PlacedOrder, error) {
	if err := ValidateRequest(customer, items); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check everything before touching anything, so a late failure never
	// leaves a partial decrement behind.
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok {
			return nil, validationf("product not found: %d", it.ProductID)
		}
		if p.Stock < it.Quantity {
			return nil, fmt.Errorf("product %d: %w", it.ProductID, ErrInsufficientStock)
		}
	}

	now := time.Now().UTC()
	o := Order{
		ID:              uuid.NewString(),
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerAddress: customer.Address,
		TotalAmount:     TotalAmount(items),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	placed := &PlacedOrder{Order: o}
	for _, it := range items {
		s.products[it.ProductID].Stock -= it.Quantity
		s.nextItem++
		placed.Items = append(placed.Items, OrderItem{
			ID:        s.nextItem,
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	s.orders[o.ID] = placed
	s.ids = append(s.ids, o.ID)
	cp := *placed
	return &cp, nil
}

func (s *MemStore) GetOrder(ctx context.Context, id string) (*PlacedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	placed, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *placed
	cp.Items = append([]OrderItem(nil), placed.Items...)
	for i := range cp.Items {
		if p, ok := s.products[cp.Items[i].ProductID]; ok {
			pc := *p
			cp.Items[i].Product = &pc
		}
	}
	return &cp, nil
}

func (s *MemStore) ListOrders(ctx context.Context) ([]PlacedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PlacedOrder, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, *s.orders[id])
	}
	return out, nil
}

func (s *MemStore) UpdateStatus(ctx context.Context, id string, to Status) (*Order, error) {
	if !to.Valid() {
		return nil, validationf("invalid status: %s", to)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	placed, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !CanTransition(placed.Order.Status, to) {
		return nil, fmt.Errorf("%s -> %s: %w", placed.Order.Status, to, ErrInvalidStatusTransition)
	}
	if to == StatusCancelled {
		for _, it := range placed.Items {
			if p, ok := s.products[it.ProductID]; ok {
				p.Stock += it.Quantity
			}
		}
	}
	placed.Order.Status = to
	placed.Order.UpdatedAt = time.Now().UTC()
	cp := placed.Order
	return &cp, nil
}
