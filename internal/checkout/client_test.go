package checkout

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yashdharmal/shopline/internal/catalog"
	"github.com/yashdharmal/shopline/internal/httpx"
	"github.com/yashdharmal/shopline/internal/orders"
	"github.com/yashdharmal/shopline/internal/pricing"
)

// End to end: cart -> selection -> submission -> HTTP handler -> store.
func TestCheckoutRoundTrip(t *testing.T) {
	store := orders.NewMemStore()
	store.SeedProduct(catalog.Product{ID: 1, Name: "A", Price: dec("10.00"), Stock: 5, CategoryID: 1})
	store.SeedProduct(catalog.Product{ID: 2, Name: "B", Price: dec("5.00"), Stock: 5, CategoryID: 1})

	router := httpx.NewRouter()
	(&httpx.OrdersHandler{Store: store, Service: "test"}).Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	cart := NewCart()
	cart.Add(product(1, "10.00"))
	cart.Add(product(1, "10.00"))
	cart.Add(product(2, "5.00"))

	sel, err := ActiveSelection(cart, NewBuyNow())
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	quote := pricing.ForSubtotal(sel.Subtotal)

	sub := NewSubmission(NewClient(srv.URL), 5*time.Millisecond)
	done, err := sub.Submit(context.Background(), orders.CustomerDetails{
		Name: "Jane Doe", Email: "jane@example.com", Address: "1 Main St, Springfield",
	}, sel, Effects{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	<-done
	if err := sub.Err(); err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	// the server-computed total must equal the subtotal the quote was
	// derived from
	list, err := store.ListOrders(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one order, got %d (%v)", len(list), err)
	}
	if !list[0].Order.TotalAmount.Equal(quote.Subtotal) {
		t.Fatalf("server total %s != client subtotal %s", list[0].Order.TotalAmount, quote.Subtotal)
	}

	if !cart.Empty() {
		t.Fatalf("cart must be cleared after acknowledgment")
	}
	if store.ProductStock(1) != 3 || store.ProductStock(2) != 4 {
		t.Fatalf("stock after checkout: %d %d", store.ProductStock(1), store.ProductStock(2))
	}
}

func TestClientSurfacesValidationError(t *testing.T) {
	store := orders.NewMemStore()
	router := httpx.NewRouter()
	(&httpx.OrdersHandler{Store: store, Service: "test"}).Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PlaceOrder(context.Background(), orders.CustomerDetails{}, nil)
	if !orders.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
