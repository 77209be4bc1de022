// Package gateway wraps the external payment gateway's order API.
package gateway

import (
	"context"
)

// Customer identifies the paying member to the gateway.
type Customer struct {
	ID    string `json:"customer_id"`
	Name  string `json:"customer_name"`
	Email string `json:"customer_email"`
	Phone string `json:"customer_phone"`
}

// Order is the gateway's view of a created payment order.
type Order struct {
	OrderID          string  `json:"order_id"`
	CFOrderID        string  `json:"cf_order_id"`
	PaymentSessionID string  `json:"payment_session_id"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
	OrderStatus      string  `json:"order_status"`
}

//go:generate mockery --name API --output ./mocks --outpkg mocks

// API is the outbound interface to the payment gateway. Both calls carry the
// caller's context so order creation is bounded by a timeout; a timed-out
// creation leaves no ledger mutation behind, which makes retrying safe.
type API interface {
	// CreateOrder registers a payment order and returns the gateway's order
	// id plus a session token for the paying client.
	CreateOrder(ctx context.Context, amount float64, currency string, customer Customer, note string) (*Order, error)

	// GetOrderStatus fetches the gateway's current view of an order.
	GetOrderStatus(ctx context.Context, orderID string) (*Order, error)
}
