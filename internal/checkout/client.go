package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/yashdharmal/shopline/internal/orders"
)

// Client talks to the storefront order API. It satisfies Placer.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ Placer = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: http.DefaultClient}
}

type placeOrderRequest struct {
	CustomerDetails orders.CustomerDetails `json:"customerDetails"`
	Items           []orders.ItemInput     `json:"items"`
}

type placeOrderResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *orders.PlacedOrder `json:"data"`
	Error   string              `json:"error"`
}

func (c *Client) PlaceOrder(ctx context.Context, customer orders.CustomerDetails, items []orders.ItemInput) (*orders.PlacedOrder, error) {
	body, err := json.Marshal(placeOrderRequest{CustomerDetails: customer, Items: items})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out placeOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, &orders.ValidationError{Reason: msg}
		case http.StatusNotFound:
			return nil, orders.ErrNotFound
		default:
			return nil, errors.New(msg)
		}
	}
	if out.Data == nil {
		return nil, errors.New("empty success response")
	}
	return out.Data, nil
}
