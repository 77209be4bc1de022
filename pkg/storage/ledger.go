package storage

import (
	"context"
	"time"

	"github.com/nexlevel/referral-ledger/pkg/models"
)

// LedgerReader defines the interface for reading ledger data.
type LedgerReader interface {
	// GetLedgerEntry retrieves a ledger entry by its ID.
	GetLedgerEntry(ctx context.Context, entryID string) (*models.LedgerEntry, error)

	// GetLedgerEntryByOrderRef retrieves the ledger entry linked to a
	// payment-gateway order reference.
	GetLedgerEntryByOrderRef(ctx context.Context, orderRef string) (*models.LedgerEntry, error)

	// ListLedgerEntriesByMember retrieves all ledger entries for a member.
	ListLedgerEntriesByMember(ctx context.Context, memberCode string) ([]models.LedgerEntry, error)

	// ListLedgerEntriesByLoan retrieves all entries linked to a loan entry,
	// including in-flight repayment orders.
	ListLedgerEntriesByLoan(ctx context.Context, loanEntryID string) ([]models.LedgerEntry, error)

	// GetStuckRepaymentOrders retrieves Pending repayment-payment entries
	// older than maxAge, for the reconciliation worker to re-drive.
	GetStuckRepaymentOrders(ctx context.Context, maxAge time.Duration) ([]models.LedgerEntry, error)
}

// LedgerWriter defines the interface for appending to the ledger.
type LedgerWriter interface {
	// CreateLedgerEntry appends a single entry to the ledger.
	CreateLedgerEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error)

	// MarkEntryFailed flips an entry to Failed with a diagnostic description,
	// atomically setting the callback-applied flag so the failure is recorded
	// at most once.
	MarkEntryFailed(ctx context.Context, entryID, reason string) error
}

// LedgerStore combines the reader and writer interfaces.
type LedgerStore interface {
	LedgerReader
	LedgerWriter
}
