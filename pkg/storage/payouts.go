package storage

import (
	"context"

	"github.com/nexlevel/referral-ledger/pkg/models"
)

// PayoutStore defines the interface for writing commission payouts.
type PayoutStore interface {
	// CreatePayoutWithLedgerEntry persists a payout and its paired
	// LevelBenefit ledger entry in a single atomic write. It fails with
	// ErrDuplicatePayout if a payout for the same (sponsor, member, level)
	// triple already exists, which makes event replays no-ops.
	CreatePayoutWithLedgerEntry(ctx context.Context, payout *models.Payout, entry *models.LedgerEntry) error

	// ListPayoutsByReceiver retrieves all payouts awarded to a member.
	ListPayoutsByReceiver(ctx context.Context, receiverCode string) ([]models.Payout, error)
}
