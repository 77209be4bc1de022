package storage

import (
	"context"

	"github.com/nexlevel/referral-ledger/pkg/models"
)

// SettlementStore defines the highly-privileged interface for applying a
// repayment to a loan. Both operations move money state across the repayment
// entry, the loan entry, and the member record in a single atomic write, with
// a compare-and-swap on the loan's due amount so two concurrent settlements
// can never both succeed against the same baseline. It should only be exposed
// to the webhook reconciliation processor and the loan lifecycle manager.
type SettlementStore interface {
	// SettleRepaymentOrder applies a verified gateway confirmation to an
	// existing Pending repayment-payment entry using its creation-time
	// snapshot. The entry's callback-applied flag is set in the same write;
	// a replay fails with ErrCallbackAlreadyApplied, a lost CAS race with
	// ErrDueAmountMoved.
	SettleRepaymentOrder(ctx context.Context, repay *models.LedgerEntry) error

	// RecordManualRepayment creates a Completed offline-repayment entry and
	// applies its snapshot to the loan in the same write.
	RecordManualRepayment(ctx context.Context, repay *models.LedgerEntry) error
}
