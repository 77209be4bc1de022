// Package webhook verifies, deduplicates, and applies the payment gateway's
// asynchronous callbacks to the ledger and loan state.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// AmountEpsilon is the tolerance for comparing the callback's paid amount to
// the entry's expected debit. Gateways report float JSON amounts; anything
// beyond a paisa of drift is a real mismatch.
const AmountEpsilon = 0.01

//go:generate mockery --name Settler --output ./mocks --outpkg mocks

// Settler applies a confirmed repayment order to the loan state.
type Settler interface {
	SettleOrder(ctx context.Context, repay *models.LedgerEntry) error
}

// Outcome is what the callback handler reports back to the gateway. The
// transport status is always an acknowledgement; Success carries the logical
// result so the gateway does not retry logically-handled outcomes forever.
type Outcome struct {
	Success bool   `json:"success"`
	Applied bool   `json:"applied"`
	Message string `json:"message"`
	OrderID string `json:"order_id,omitempty"`
}

// Processor reconciles gateway callbacks against the ledger.
type Processor struct {
	Ledger  storage.LedgerStore
	Settler Settler
	Secret  string
	Logger  *slog.Logger

	// ProcessUnverified keeps the original availability-over-integrity
	// tradeoff behind an explicit operator decision: when true, a callback
	// that fails signature verification is still processed (and loudly
	// logged) rather than dropped, so a legitimate payment with a
	// mis-signed callback is not lost.
	ProcessUnverified bool
}

// NewProcessor creates a Processor.
func NewProcessor(ledger storage.LedgerStore, settler Settler, secret string, processUnverified bool, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Ledger:            ledger,
		Settler:           settler,
		Secret:            secret,
		Logger:            logger,
		ProcessUnverified: processUnverified,
	}
}

// Process runs the full reconciliation pipeline for one callback delivery:
// signature verification, payload normalization, idempotency short-circuit,
// amount verification, status mapping, and settlement. It always returns an
// Outcome suitable for acknowledging the gateway.
func (p *Processor) Process(ctx context.Context, signature, timestamp string, body []byte) Outcome {
	scheme, verified := VerifySignature(p.Secret, timestamp, body, signature)
	if verified {
		p.Logger.Info("webhook signature verified", slog.String("scheme", string(scheme)))
	} else {
		p.Logger.Error("webhook signature verification failed",
			slog.String("timestamp", timestamp),
			slog.Bool("processing_anyway", p.ProcessUnverified))
		if !p.ProcessUnverified {
			return Outcome{Success: false, Message: "signature verification failed"}
		}
	}

	event, err := ParseEvent(body)
	if err != nil {
		p.Logger.Error("webhook payload rejected", slog.String("error", err.Error()))
		return Outcome{Success: false, Message: fmt.Sprintf("unparseable payload: %v", err)}
	}

	entry, err := p.Ledger.GetLedgerEntryByOrderRef(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Acknowledged so the gateway stops retrying, but flagged for
			// investigation: we should never receive callbacks for orders we
			// did not create.
			p.Logger.Error("webhook references unknown order", slog.String("order_id", event.OrderID))
			return Outcome{Success: false, Message: "unknown order reference", OrderID: event.OrderID}
		}
		p.Logger.Error("webhook order lookup failed", slog.String("order_id", event.OrderID), slog.String("error", err.Error()))
		return Outcome{Success: false, Message: "order lookup failed", OrderID: event.OrderID}
	}

	if entry.CallbackApplied {
		return p.priorOutcome(entry)
	}

	switch {
	case event.Settled():
		return p.applySuccess(ctx, entry, event)
	case event.Failed():
		return p.applyFailure(ctx, entry, event)
	default:
		// Still in flight at the gateway; nothing to apply yet.
		return Outcome{Success: true, Applied: false, OrderID: event.OrderID,
			Message: fmt.Sprintf("order status %s carries no outcome", event.Status)}
	}
}

// applySuccess verifies the paid amount and settles the repayment.
func (p *Processor) applySuccess(ctx context.Context, entry *models.LedgerEntry, event *Event) Outcome {
	if math.Abs(event.Amount-entry.Debit) > AmountEpsilon {
		reason := fmt.Sprintf("amount mismatch: gateway reported %.2f, expected %.2f", event.Amount, entry.Debit)
		p.Logger.Error("webhook amount mismatch",
			slog.String("order_id", event.OrderID),
			slog.Float64("reported", event.Amount),
			slog.Float64("expected", entry.Debit))
		if err := p.Ledger.MarkEntryFailed(ctx, entry.EntryID, reason); err != nil {
			if errors.Is(err, storage.ErrCallbackAlreadyApplied) {
				return p.refreshedOutcome(ctx, entry)
			}
			return Outcome{Success: false, Message: "failed to record amount mismatch", OrderID: event.OrderID}
		}
		return Outcome{Success: false, Applied: true, Message: reason, OrderID: event.OrderID}
	}

	if err := p.Settler.SettleOrder(ctx, entry); err != nil {
		switch {
		case errors.Is(err, storage.ErrCallbackAlreadyApplied):
			return p.refreshedOutcome(ctx, entry)
		case errors.Is(err, storage.ErrDueAmountMoved):
			// A concurrent repayment settled first; this order's baseline is
			// gone and it must not apply on top of the moved due amount.
			reason := "loan due amount changed before settlement; repayment not applied"
			if err := p.Ledger.MarkEntryFailed(ctx, entry.EntryID, reason); err != nil && !errors.Is(err, storage.ErrCallbackAlreadyApplied) {
				p.Logger.Error("failed to fail superseded repayment", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
			}
			return Outcome{Success: false, Applied: true, Message: reason, OrderID: event.OrderID}
		default:
			p.Logger.Error("webhook settlement failed", slog.String("order_id", event.OrderID), slog.String("error", err.Error()))
			return Outcome{Success: false, Message: "settlement failed", OrderID: event.OrderID}
		}
	}

	return Outcome{Success: true, Applied: true, OrderID: event.OrderID,
		Message: fmt.Sprintf("repayment of %.2f settled", entry.Debit)}
}

// applyFailure records a terminal gateway failure against the entry.
func (p *Processor) applyFailure(ctx context.Context, entry *models.LedgerEntry, event *Event) Outcome {
	reason := fmt.Sprintf("gateway reported %s", event.Status)
	if err := p.Ledger.MarkEntryFailed(ctx, entry.EntryID, reason); err != nil {
		if errors.Is(err, storage.ErrCallbackAlreadyApplied) {
			return p.refreshedOutcome(ctx, entry)
		}
		p.Logger.Error("failed to mark entry failed", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return Outcome{Success: false, Message: "failed to record gateway failure", OrderID: event.OrderID}
	}
	return Outcome{Success: true, Applied: true, Message: reason, OrderID: event.OrderID}
}

// priorOutcome reconstructs the response for a callback that was already
// applied, without reapplying side effects.
func (p *Processor) priorOutcome(entry *models.LedgerEntry) Outcome {
	switch entry.Status {
	case models.EntryCompleted:
		return Outcome{Success: true, Applied: false, OrderID: entry.OrderRef,
			Message: "callback already applied; repayment settled"}
	case models.EntryFailed:
		return Outcome{Success: false, Applied: false, OrderID: entry.OrderRef,
			Message: "callback already applied; entry failed: " + entry.Description}
	default:
		return Outcome{Success: true, Applied: false, OrderID: entry.OrderRef,
			Message: "callback already applied"}
	}
}

// refreshedOutcome re-reads the entry after losing an idempotency race and
// reports the outcome the winner produced.
func (p *Processor) refreshedOutcome(ctx context.Context, entry *models.LedgerEntry) Outcome {
	fresh, err := p.Ledger.GetLedgerEntry(ctx, entry.EntryID)
	if err != nil {
		return Outcome{Success: false, OrderID: entry.OrderRef, Message: "callback already applied"}
	}
	return p.priorOutcome(fresh)
}
