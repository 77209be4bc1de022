package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event is the normalized form of a gateway callback, independent of which
// protocol version produced it.
type Event struct {
	OrderID string
	Amount  float64
	Status  string
	Type    string
}

// The gateway's payload shape has changed across webhook versions: newer
// versions nest order/payment objects under "data", older ones put them at
// the top level, and the amount has come through as either the payment amount
// or the order amount. Parsing walks every known location instead of trusting
// one shape.
type rawPayload struct {
	Type  string    `json:"type"`
	Data  rawData   `json:"data"`
	Order *rawOrder `json:"order"`
	Pay   *rawPay   `json:"payment"`
}

type rawData struct {
	Order *rawOrder `json:"order"`
	Pay   *rawPay   `json:"payment"`
}

type rawOrder struct {
	OrderID     string  `json:"order_id"`
	OrderAmount float64 `json:"order_amount"`
	OrderStatus string  `json:"order_status"`
	// transaction_status appeared in one protocol revision in place of
	// order_status.
	TransactionStatus string `json:"transaction_status"`
}

type rawPay struct {
	OrderID       string  `json:"order_id"`
	PaymentAmount float64 `json:"payment_amount"`
	PaymentStatus string  `json:"payment_status"`
}

// ParseEvent extracts the order reference, paid amount, and gateway status
// from a callback body of any known protocol version.
func ParseEvent(body []byte) (*Event, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	order := raw.Data.Order
	if order == nil {
		order = raw.Order
	}
	pay := raw.Data.Pay
	if pay == nil {
		pay = raw.Pay
	}

	event := &Event{Type: raw.Type}

	if pay != nil {
		event.OrderID = pay.OrderID
		event.Amount = pay.PaymentAmount
		event.Status = pay.PaymentStatus
	}
	if order != nil {
		if event.OrderID == "" {
			event.OrderID = order.OrderID
		}
		if event.Amount == 0 {
			event.Amount = order.OrderAmount
		}
		if event.Status == "" {
			event.Status = order.OrderStatus
		}
		if event.Status == "" {
			event.Status = order.TransactionStatus
		}
	}

	if event.OrderID == "" {
		return nil, fmt.Errorf("webhook payload carries no order reference")
	}
	return event, nil
}

// Settled reports whether the gateway status maps to a successful payment.
func (e *Event) Settled() bool {
	switch strings.ToUpper(e.Status) {
	case "SUCCESS", "PAID", "OK", "COMPLETED":
		return true
	}
	return false
}

// Failed reports whether the gateway status maps to a terminal failure.
// A status that is neither settled nor failed (for example ACTIVE or PENDING)
// means the payment is still in flight and the callback carries no outcome.
func (e *Event) Failed() bool {
	switch strings.ToUpper(e.Status) {
	case "FAILED", "USER_DROPPED", "CANCELLED", "EXPIRED", "VOID":
		return true
	}
	return false
}
