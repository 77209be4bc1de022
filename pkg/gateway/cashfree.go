package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config carries the gateway credentials and endpoint.
type Config struct {
	BaseURL    string
	AppID      string
	SecretKey  string
	APIVersion string
	Timeout    time.Duration
}

// CashfreeClient implements the API interface against the Cashfree PG REST
// endpoints.
type CashfreeClient struct {
	client *resty.Client
	cfg    Config
}

// NewCashfreeClient creates a client with a bounded per-call timeout.
func NewCashfreeClient(cfg Config) *CashfreeClient {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2025-01-01"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-version", cfg.APIVersion).
		SetHeader("x-client-id", cfg.AppID).
		SetHeader("x-client-secret", cfg.SecretKey)

	return &CashfreeClient{client: client, cfg: cfg}
}

// Make sure we conform to the interface
var _ API = (*CashfreeClient)(nil)

type createOrderRequest struct {
	OrderAmount     float64           `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails Customer          `json:"customer_details"`
	OrderNote       string            `json:"order_note,omitempty"`
	OrderTags       map[string]string `json:"order_tags,omitempty"`
}

type gatewayError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

// CreateOrder registers a payment order with the gateway.
func (c *CashfreeClient) CreateOrder(ctx context.Context, amount float64, currency string, customer Customer, note string) (*Order, error) {
	var order Order
	var apiErr gatewayError

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(createOrderRequest{
			OrderAmount:     amount,
			OrderCurrency:   currency,
			CustomerDetails: customer,
			OrderNote:       note,
		}).
		SetResult(&order).
		SetError(&apiErr).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gateway rejected order creation: %s (%s)", apiErr.Message, resp.Status())
	}

	return &order, nil
}

// GetOrderStatus fetches the gateway's current view of an order.
func (c *CashfreeClient) GetOrderStatus(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	var apiErr gatewayError

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&order).
		SetError(&apiErr).
		Get(fmt.Sprintf("/orders/%s", orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway order status: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gateway rejected order lookup: %s (%s)", apiErr.Message, resp.Status())
	}

	return &order, nil
}
