// Package loan implements the claim / approve / reject / repay lifecycle and
// tier progression.
package loan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexlevel/referral-ledger/pkg/gateway"
	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// Validation errors surfaced to callers as rejected operations with no state
// change.
var (
	ErrMemberNotActive      = errors.New("member is not active")
	ErrPackageTooSmall      = errors.New("package value below the loan eligibility threshold")
	ErrNotEnoughReferrals   = errors.New("member needs at least two direct referrals")
	ErrInvalidAmount        = errors.New("repayment amount must be positive")
	ErrNothingDue           = errors.New("loan has no outstanding due amount")
	ErrAmountExceedsDue     = errors.New("repayment amount exceeds the outstanding due amount")
	ErrNotRepaymentEligible = errors.New("loan is not approved for repayment")
)

// Eligibility thresholds for a first claim.
const (
	MinPackageValue    = 500.0
	MinDirectReferrals = 2
)

// Store is the slice of the data layer the manager needs.
type Store interface {
	storage.MemberReader
	storage.LedgerStore
	storage.LoanStore
	storage.SettlementStore
}

// Manager drives the loan lifecycle.
type Manager struct {
	Store   Store
	Gateway gateway.API
	Tiers   TierTable
}

// NewManager creates a Manager with the given tier ladder.
func NewManager(store Store, gw gateway.API, tiers TierTable) *Manager {
	if tiers == nil {
		tiers = DefaultTierTable()
	}
	return &Manager{Store: store, Gateway: gw, Tiers: tiers}
}

// Claim opens a loan claim for a member. Eligibility gates: active member,
// package value at or above the threshold, at least two direct referrals, and
// no non-terminal loan. The tier is derived from the member's fully repaid
// prior loans. On success a Pending LoanRequest entry carries the tier's
// principal as the initial due amount.
func (m *Manager) Claim(ctx context.Context, memberCode string) (*models.LedgerEntry, error) {
	member, err := m.Store.GetMember(ctx, memberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load member for loan claim: %w", err)
	}

	if member.Status != models.MemberActive {
		return nil, ErrMemberNotActive
	}
	if !member.LoanStatus.CanClaimLoan() {
		return nil, storage.ErrLoanInFlight
	}
	if member.PackageValue < MinPackageValue {
		return nil, ErrPackageTooSmall
	}
	if len(member.DirectReferrals) < MinDirectReferrals {
		return nil, ErrNotEnoughReferrals
	}

	paid, err := m.Store.CountPaidLoans(ctx, memberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to count paid loans: %w", err)
	}
	tier := m.Tiers.TierFor(paid)

	claim := &models.LedgerEntry{
		EntryID:         uuid.New().String(),
		MemberCode:      memberCode,
		Type:            models.LoanRequest,
		Description:     fmt.Sprintf("Loan claim for principal %.2f", tier.Principal),
		Status:          models.EntryPending,
		Principal:       tier.Principal,
		DueAmount:       tier.Principal,
		RepaymentStatus: models.RepaymentUnpaid,
		Installments:    tier.Installments,
	}

	if err := m.Store.CreateLoanClaim(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// Approve applies an admin approval. The tier is re-derived from the same
// completed-loan count used at claim time; a client-supplied amount is never
// trusted, which closes the tier-manipulation hole.
func (m *Manager) Approve(ctx context.Context, loanEntryID, approver string) (*models.LedgerEntry, error) {
	loanEntry, err := m.Store.GetLedgerEntry(ctx, loanEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan for approval: %w", err)
	}
	if loanEntry.Type != models.LoanRequest {
		return nil, storage.ErrLoanNotActionable
	}

	paid, err := m.Store.CountPaidLoans(ctx, loanEntry.MemberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to count paid loans for approval: %w", err)
	}
	tier := m.Tiers.TierFor(paid)

	loanEntry.Description = fmt.Sprintf("Loan approved by %s", approver)
	if err := m.Store.ApproveLoan(ctx, loanEntry, tier.Principal, tier.NetCredit, tier.Installments); err != nil {
		return nil, err
	}

	loanEntry.Status = models.EntryApproved
	loanEntry.Principal = tier.Principal
	loanEntry.Credited = tier.NetCredit
	loanEntry.DueAmount = tier.Principal
	loanEntry.RepaymentStatus = models.RepaymentUnpaid
	loanEntry.Installments = tier.Installments
	return loanEntry, nil
}

// Reject applies an admin rejection and clears the member's in-flight claim.
func (m *Manager) Reject(ctx context.Context, loanEntryID, note string) (*models.LedgerEntry, error) {
	loanEntry, err := m.Store.GetLedgerEntry(ctx, loanEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan for rejection: %w", err)
	}
	if loanEntry.Type != models.LoanRequest {
		return nil, storage.ErrLoanNotActionable
	}

	if err := m.Store.RejectLoan(ctx, loanEntry, note); err != nil {
		return nil, err
	}

	loanEntry.Status = models.EntryRejected
	return loanEntry, nil
}

// CurrentDue computes the loan's effective due amount: the stored due minus
// the snapshots of other repayment orders still in flight. Netting out
// Pending attempts keeps a second concurrent order from being sized against
// money that is already spoken for.
func (m *Manager) CurrentDue(ctx context.Context, loanEntry *models.LedgerEntry) (float64, error) {
	linked, err := m.Store.ListLedgerEntriesByLoan(ctx, loanEntry.EntryID)
	if err != nil {
		return 0, fmt.Errorf("failed to list in-flight repayments: %w", err)
	}

	due := loanEntry.DueAmount
	for _, entry := range linked {
		if entry.Type == models.LoanRepaymentPayment && entry.Status == models.EntryPending && entry.Snapshot != nil {
			due -= entry.Snapshot.Requested
		}
	}
	if due < 0 {
		due = 0
	}
	return due, nil
}

// snapshotFor validates a repayment request against the loan and freezes the
// amounts settlement will apply.
func (m *Manager) snapshotFor(ctx context.Context, loanEntryID string, amount float64) (*models.LedgerEntry, *models.RepaymentSnapshot, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	loanEntry, err := m.Store.GetLedgerEntry(ctx, loanEntryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load loan for repayment: %w", err)
	}
	if loanEntry.Type != models.LoanRequest || loanEntry.Status != models.EntryApproved {
		return nil, nil, ErrNotRepaymentEligible
	}
	if loanEntry.RepaymentStatus == models.RepaymentPaid {
		return nil, nil, ErrNothingDue
	}

	due, err := m.CurrentDue(ctx, loanEntry)
	if err != nil {
		return nil, nil, err
	}
	if due <= 0 {
		return nil, nil, ErrNothingDue
	}
	if amount > due {
		return nil, nil, ErrAmountExceedsDue
	}

	applied := amount
	if applied > due {
		applied = due
	}
	after := due - applied
	if after < 0 {
		after = 0
	}

	return loanEntry, &models.RepaymentSnapshot{
		Requested: applied,
		DueBefore: due,
		DueAfter:  after,
	}, nil
}

// CreateRepaymentOrder registers a gateway order for an online repayment and
// records a Pending repayment entry carrying the creation-time snapshot. The
// loan's due amount is not touched; only a verified gateway confirmation
// settles it. A gateway timeout therefore leaves nothing to compensate.
func (m *Manager) CreateRepaymentOrder(ctx context.Context, loanEntryID string, amount float64, customer gateway.Customer) (*models.LedgerEntry, error) {
	loanEntry, snap, err := m.snapshotFor(ctx, loanEntryID, amount)
	if err != nil {
		return nil, err
	}

	order, err := m.Gateway.CreateOrder(ctx, snap.Requested, "INR", customer,
		fmt.Sprintf("Repayment for loan %s", loanEntry.EntryID))
	if err != nil {
		return nil, fmt.Errorf("failed to create repayment order: %w", err)
	}

	entry := &models.LedgerEntry{
		EntryID:          uuid.New().String(),
		MemberCode:       loanEntry.MemberCode,
		Type:             models.LoanRepaymentPayment,
		Description:      fmt.Sprintf("Repayment order %s for loan %s", order.OrderID, loanEntry.EntryID),
		Debit:            snap.Requested,
		Status:           models.EntryPending,
		LoanEntryID:      loanEntry.EntryID,
		Snapshot:         snap,
		OrderRef:         order.OrderID,
		PaymentSessionID: order.PaymentSessionID,
	}

	created, err := m.Store.CreateLedgerEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record repayment order: %w", err)
	}
	return created, nil
}

// RepayOffline applies a manual repayment immediately: the Completed
// LoanRepayment entry, the loan's due amount, and (when fully paid) the
// member's Repaid flip all land in one atomic write.
func (m *Manager) RepayOffline(ctx context.Context, loanEntryID string, amount float64) (*models.LedgerEntry, error) {
	loanEntry, snap, err := m.snapshotFor(ctx, loanEntryID, amount)
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		MemberCode:  loanEntry.MemberCode,
		Type:        models.LoanRepayment,
		Description: fmt.Sprintf("Offline repayment for loan %s", loanEntry.EntryID),
		Debit:       snap.Requested,
		LoanEntryID: loanEntry.EntryID,
		Snapshot:    snap,
	}

	if err := m.Store.RecordManualRepayment(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SettleOrder applies a confirmed repayment order using its creation-time
// snapshot. It is the single entry point the webhook reconciliation path and
// the stuck-order reconciler share.
func (m *Manager) SettleOrder(ctx context.Context, repay *models.LedgerEntry) error {
	if repay.Type != models.LoanRepaymentPayment {
		return storage.ErrLoanNotActionable
	}
	return m.Store.SettleRepaymentOrder(ctx, repay)
}
