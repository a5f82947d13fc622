package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/yashdharmal/shopline/internal/kafka"
	"github.com/yashdharmal/shopline/internal/orders"
	"github.com/yashdharmal/shopline/internal/redisx"
)

type OrdersHandler struct {
	Store orders.Store

	// Optional collaborators; nil disables the side channel.
	PlacedProducer *kafkax.Producer
	StatusProducer *kafkax.Producer
	Redis          *redis.Client
	Service        string
}

type placeOrderRequest struct {
	CustomerDetails orders.CustomerDetails `json:"customerDetails"`
	Items           []orders.ItemInput     `json:"items"`
}

type updateStatusRequest struct {
	Status orders.Status `json:"status"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Patch("/orders/{id}/status", h.updateStatus)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "Order placement failed", "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	placed, err := h.Store.PlaceOrder(ctx, req.CustomerDetails, req.Items)
	if err != nil {
		switch {
		case orders.IsValidation(err), errors.Is(err, orders.ErrInsufficientStock):
			respondErr(w, http.StatusBadRequest, "Order placement failed", err.Error())
		default:
			respondErr(w, http.StatusInternalServerError, "Order placement failed", err.Error())
		}
		return
	}

	h.publishPlaced(r, placed)
	respondOK(w, http.StatusCreated, "Order placed successfully", placed)
}

func (h *OrdersHandler) publishPlaced(r *http.Request, placed *orders.PlacedOrder) {
	if h.PlacedProducer == nil {
		return
	}
	items := make([]orders.ItemInput, 0, len(placed.Items))
	for _, it := range placed.Items {
		items = append(items, orders.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	ev := orders.NewEnvelope(orders.EventOrderPlaced, h.Service, r.Header.Get("X-Request-Id"), placed.Order.ID,
		orders.OrderPlacedPayload{
			OrderID:       placed.Order.ID,
			CustomerEmail: placed.Order.CustomerEmail,
			Items:         items,
			TotalAmount:   placed.Order.TotalAmount,
		})
	h.PlacedProducer.Publish(orders.PartitionKey(placed.Order.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Store.ListOrders(ctx)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Failed to fetch orders", err.Error())
		return
	}
	respondOK(w, http.StatusOK, "Orders fetched successfully", list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrder, id)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	placed, err := h.Store.GetOrder(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		respondErr(w, http.StatusNotFound, "Order not found", "Order not found")
		return
	}
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Failed to fetch order", err.Error())
		return
	}

	body, _ := json.Marshal(Envelope{Success: true, Message: "Order fetched successfully", Data: placed})
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, body, redisx.TTLOrderCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "Failed to update order status", "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	prev := orders.Status("")
	if cur, err := h.Store.GetOrder(ctx, id); err == nil {
		prev = cur.Order.Status
	}

	o, err := h.Store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			respondErr(w, http.StatusNotFound, "Order not found", "Order not found")
		case orders.IsValidation(err), errors.Is(err, orders.ErrInvalidStatusTransition):
			respondErr(w, http.StatusBadRequest, "Failed to update order status", err.Error())
		default:
			respondErr(w, http.StatusInternalServerError, "Failed to update order status", err.Error())
		}
		return
	}

	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrder, id)).Err()
	}
	if h.StatusProducer != nil {
		ev := orders.NewEnvelope(orders.EventOrderStatusChanged, h.Service, r.Header.Get("X-Request-Id"), id,
			orders.OrderStatusChangedPayload{OrderID: id, From: prev, To: o.Status})
		h.StatusProducer.Publish(orders.PartitionKey(id), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	respondOK(w, http.StatusOK, "Order status updated successfully", o)
}
