package storage

import (
	"context"

	"github.com/nexlevel/referral-ledger/pkg/models"
)

// LoanStore defines the interface for the non-settlement half of the loan
// lifecycle: claims and admin decisions.
type LoanStore interface {
	// CreateLoanClaim persists the Pending claim entry and flips the member's
	// loan-claim status to Processing in one atomic write. It fails with
	// ErrLoanInFlight if the member already has a non-terminal loan.
	CreateLoanClaim(ctx context.Context, claim *models.LedgerEntry) error

	// ApproveLoan marks a Pending claim Approved with the server-derived tier
	// amounts and flips the member's loan-claim status Processing -> Approved.
	ApproveLoan(ctx context.Context, loan *models.LedgerEntry, principal, credited float64, installments int) error

	// RejectLoan marks a Pending claim Rejected and clears the member's
	// in-flight claim status.
	RejectLoan(ctx context.Context, loan *models.LedgerEntry, note string) error

	// CountPaidLoans counts the member's fully repaid prior loans. The count
	// indexes the tier table.
	CountPaidLoans(ctx context.Context, memberCode string) (int, error)
}
