package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEvent(t *testing.T) {
	t.Run("Nested Data Shape", func(t *testing.T) {
		body := []byte(`{
			"type": "PAYMENT_SUCCESS_WEBHOOK",
			"data": {
				"order": {"order_id": "order_1", "order_amount": 1500, "order_status": "PAID"},
				"payment": {"order_id": "order_1", "payment_amount": 1500, "payment_status": "SUCCESS"}
			}
		}`)

		event, err := ParseEvent(body)

		assert.NoError(t, err)
		assert.Equal(t, "order_1", event.OrderID)
		assert.Equal(t, 1500.0, event.Amount)
		assert.Equal(t, "SUCCESS", event.Status)
		assert.Equal(t, "PAYMENT_SUCCESS_WEBHOOK", event.Type)
	})

	t.Run("Top Level Order Shape", func(t *testing.T) {
		body := []byte(`{"order": {"order_id": "order_2", "order_amount": 900, "order_status": "PAID"}}`)

		event, err := ParseEvent(body)

		assert.NoError(t, err)
		assert.Equal(t, "order_2", event.OrderID)
		assert.Equal(t, 900.0, event.Amount)
		assert.Equal(t, "PAID", event.Status)
	})

	t.Run("Transaction Status Fallback", func(t *testing.T) {
		body := []byte(`{"order": {"order_id": "order_3", "order_amount": 500, "transaction_status": "SUCCESS"}}`)

		event, err := ParseEvent(body)

		assert.NoError(t, err)
		assert.Equal(t, "SUCCESS", event.Status)
	})

	t.Run("Payment Amount Wins Over Order Amount", func(t *testing.T) {
		body := []byte(`{
			"data": {
				"order": {"order_id": "order_4", "order_amount": 1000, "order_status": "PAID"},
				"payment": {"payment_amount": 999, "payment_status": "SUCCESS"}
			}
		}`)

		event, err := ParseEvent(body)

		assert.NoError(t, err)
		assert.Equal(t, "order_4", event.OrderID)
		assert.Equal(t, 999.0, event.Amount)
	})

	t.Run("No Order Reference", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{"type": "TEST"}`))
		assert.Error(t, err)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{not json`))
		assert.Error(t, err)
	})
}

func TestEventStatusMapping(t *testing.T) {
	settled := []string{"SUCCESS", "PAID", "ok", "Completed"}
	for _, s := range settled {
		assert.True(t, (&Event{Status: s}).Settled(), s)
		assert.False(t, (&Event{Status: s}).Failed(), s)
	}

	failed := []string{"FAILED", "USER_DROPPED", "cancelled", "EXPIRED", "VOID"}
	for _, s := range failed {
		assert.True(t, (&Event{Status: s}).Failed(), s)
		assert.False(t, (&Event{Status: s}).Settled(), s)
	}

	inFlight := []string{"ACTIVE", "PENDING", ""}
	for _, s := range inFlight {
		assert.False(t, (&Event{Status: s}).Settled(), s)
		assert.False(t, (&Event{Status: s}).Failed(), s)
	}
}
