package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yashdharmal/shopline/internal/catalog"
	"github.com/yashdharmal/shopline/internal/orders"
)

func newServer(t *testing.T) (*httptest.Server, *orders.MemStore) {
	t.Helper()
	store := orders.NewMemStore()
	store.SeedProduct(catalog.Product{ID: 1, Name: "A", Price: decimal.RequireFromString("10.00"), Stock: 5, CategoryID: 1})
	store.SeedProduct(catalog.Product{ID: 2, Name: "B", Price: decimal.RequireFromString("5.00"), Stock: 1, CategoryID: 1})

	router := NewRouter()
	h := &OrdersHandler{Store: store, Service: "test"}
	h.Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func decode(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	defer resp.Body.Close()
	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

const validOrderBody = `{
	"customerDetails": {"name":"Jane Doe","email":"jane@example.com","address":"1 Main St"},
	"items": [{"id":1,"quantity":2,"price":10.00},{"id":2,"quantity":1,"price":5.00}]
}`

func TestPlaceOrderEndpoint(t *testing.T) {
	srv, store := newServer(t)

	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(validOrderBody))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	env := decode(t, resp)
	if !env.Success || env.Message != "Order placed successfully" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	data, _ := json.Marshal(env.Data)
	var placed orders.PlacedOrder
	if err := json.Unmarshal(data, &placed); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if placed.Order.Status != orders.StatusPending {
		t.Fatalf("expected pending, got %s", placed.Order.Status)
	}
	if !placed.Order.TotalAmount.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("total: got %s", placed.Order.TotalAmount)
	}
	if len(placed.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(placed.Items))
	}
	if store.ProductStock(1) != 3 || store.ProductStock(2) != 0 {
		t.Fatalf("stock not decremented: %d %d", store.ProductStock(1), store.ProductStock(2))
	}
}

func TestPlaceOrderValidationFailure(t *testing.T) {
	srv, store := newServer(t)

	body := `{"customerDetails":{"name":"","email":"","address":""},"items":[]}`
	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	env := decode(t, resp)
	if env.Success || env.Error == "" {
		t.Fatalf("expected failure envelope, got %+v", env)
	}
	if store.ProductStock(1) != 5 {
		t.Fatalf("validation failure must not touch stock")
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	srv, store := newServer(t)

	body := `{
		"customerDetails": {"name":"Jane Doe","email":"jane@example.com","address":"1 Main St"},
		"items": [{"id":2,"quantity":3,"price":5.00}]
	}`
	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	env := decode(t, resp)
	if env.Success || !strings.Contains(env.Error, "insufficient stock") {
		t.Fatalf("expected insufficient stock, got %+v", env)
	}
	if store.ProductStock(2) != 1 {
		t.Fatalf("failed order must leave stock unchanged")
	}
}

func TestGetOrderNotFound(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/orders/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	env := decode(t, resp)
	if env.Success || env.Error != "Order not found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func patchStatus(t *testing.T, url, id, status string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPatch, url+"/orders/"+id+"/status",
		strings.NewReader(`{"status":"`+status+`"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	return resp
}

func TestUpdateStatusEndpoint(t *testing.T) {
	srv, store := newServer(t)

	placed, err := store.PlaceOrder(context.Background(), orders.CustomerDetails{
		Name: "Jane Doe", Email: "jane@example.com", Address: "1 Main St",
	}, []orders.ItemInput{{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("10.00")}})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	id := placed.Order.ID

	resp := patchStatus(t, srv.URL, id, "completed")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("pending -> completed: expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = patchStatus(t, srv.URL, id, "processing")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pending -> processing: expected 200, got %d", resp.StatusCode)
	}
	env := decode(t, resp)
	if !env.Success {
		t.Fatalf("expected success envelope, got %+v", env)
	}

	resp = patchStatus(t, srv.URL, "missing", "processing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing order: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
