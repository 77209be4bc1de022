package models

import (
	"fmt"
	"time"
)

// MemberStatus defines the possible activation states of a member.
type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberActive   MemberStatus = "active"
	MemberRejected MemberStatus = "rejected"
)

// LoanClaimStatus tracks a member's current position in the loan lifecycle.
type LoanClaimStatus string

const (
	LoanNone       LoanClaimStatus = "None"
	LoanProcessing LoanClaimStatus = "Processing"
	LoanApproved   LoanClaimStatus = "Approved"
	LoanRejected   LoanClaimStatus = "Rejected"
	LoanRepaid     LoanClaimStatus = "Repaid"
)

// EntryType tags a ledger entry with the business event that created it.
type EntryType string

const (
	LevelBenefit         EntryType = "Level Benefits"
	DirectBenefit        EntryType = "Direct Benefits"
	Withdrawal           EntryType = "Withdrawal"
	LoanRequest          EntryType = "Loan Request"
	LoanRepayment        EntryType = "Loan Repayment"
	LoanRepaymentPayment EntryType = "Loan Repayment Payment"
)

// IsLoanType reports whether entries of this type are excluded from the
// spendable wallet balance. Loans are tracked as outstanding liabilities,
// not as spendable funds.
func (t EntryType) IsLoanType() bool {
	switch t {
	case LoanRequest, LoanRepayment, LoanRepaymentPayment:
		return true
	}
	return false
}

// EntryStatus defines the lifecycle states of a ledger entry.
type EntryStatus string

const (
	EntryPending    EntryStatus = "Pending"
	EntryProcessing EntryStatus = "Processing"
	EntryApproved   EntryStatus = "Approved"
	EntryRejected   EntryStatus = "Rejected"
	EntryCompleted  EntryStatus = "Completed"
	EntryFailed     EntryStatus = "Failed"
)

// RepaymentStatus tracks how much of an approved loan has been paid back.
type RepaymentStatus string

const (
	RepaymentUnpaid        RepaymentStatus = "Unpaid"
	RepaymentPartiallyPaid RepaymentStatus = "PartiallyPaid"
	RepaymentPaid          RepaymentStatus = "Paid"
)

// Member represents the internal domain model for a network member.
// It includes dynamodbav tags for marshalling.
type Member struct {
	MemberCode      string          `dynamodbav:"member_code"`
	Name            string          `dynamodbav:"name"`
	SponsorCode     string          `dynamodbav:"sponsor_code,omitempty"`
	Status          MemberStatus    `dynamodbav:"status"`
	PackageValue    float64         `dynamodbav:"package_value"`
	DirectReferrals []string        `dynamodbav:"direct_referrals,stringset,omitempty"`
	TotalTeam       int64           `dynamodbav:"total_team"`
	LoanStatus      LoanClaimStatus `dynamodbav:"loan_status"`
	CreatedAt       time.Time       `dynamodbav:"created_at"`
	UpdatedAt       time.Time       `dynamodbav:"updated_at"`
}

// RepaymentSnapshot freezes the state of a loan at the moment a repayment
// order is created. Settlement applies this snapshot, never a fresh re-read,
// so concurrent repayment attempts cannot compound against a moving baseline.
type RepaymentSnapshot struct {
	Requested float64 `dynamodbav:"requested"`
	DueBefore float64 `dynamodbav:"due_before"`
	DueAfter  float64 `dynamodbav:"due_after"`
}

// LedgerEntry is a single record in the append-mostly ledger. An entry is
// created once per business event; only its status, due-amount, and
// callback fields mutate afterwards, and it is never deleted.
type LedgerEntry struct {
	EntryID     string      `dynamodbav:"entry_id"`
	MemberCode  string      `dynamodbav:"member_code"`
	Type        EntryType   `dynamodbav:"entry_type"`
	Description string      `dynamodbav:"description"`
	Credit      float64     `dynamodbav:"credit"`
	Debit       float64     `dynamodbav:"debit"`
	Status      EntryStatus `dynamodbav:"status"`

	// Commission fields.
	Level             int    `dynamodbav:"level,omitempty"`
	RelatedMemberCode string `dynamodbav:"related_member_code,omitempty"`
	RelatedPayoutKey  string `dynamodbav:"related_payout_key,omitempty"`

	// Loan fields, set on LoanRequest entries.
	Principal       float64         `dynamodbav:"principal,omitempty"`
	Credited        float64         `dynamodbav:"credited,omitempty"`
	DueAmount       float64         `dynamodbav:"due_amount"`
	RepaymentStatus RepaymentStatus `dynamodbav:"repayment_status,omitempty"`
	Installments    int             `dynamodbav:"installments,omitempty"`

	// Loan linkage and repayment snapshot, set on repayment-type entries.
	LoanEntryID string             `dynamodbav:"loan_entry_id,omitempty"`
	Snapshot    *RepaymentSnapshot `dynamodbav:"snapshot,omitempty"`

	// Withdrawal fields.
	Deduction float64 `dynamodbav:"deduction,omitempty"`
	NetAmount float64 `dynamodbav:"net_amount,omitempty"`

	// Gateway linkage and the idempotency flag for external callbacks.
	OrderRef          string    `dynamodbav:"order_ref,omitempty"`
	PaymentSessionID  string    `dynamodbav:"payment_session_id,omitempty"`
	CallbackApplied   bool      `dynamodbav:"callback_applied"`
	CallbackAppliedAt time.Time `dynamodbav:"callback_applied_at,omitempty"`

	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
	GSI1PK    string    `dynamodbav:"gsi1pk"`
}

// Payout records a commission awarded to a sponsor for a downline event.
// One Payout pairs 1:1 with one LevelBenefit ledger entry; the pair is
// written in a single atomic transaction.
type Payout struct {
	PayoutKey    string      `dynamodbav:"payout_key"`
	ReceiverCode string      `dynamodbav:"receiver_code"`
	SourceCode   string      `dynamodbav:"source_code"`
	Level        int         `dynamodbav:"level"`
	Amount       float64     `dynamodbav:"amount"`
	PayoutType   string      `dynamodbav:"payout_type"`
	Description  string      `dynamodbav:"description"`
	Status       EntryStatus `dynamodbav:"status"`
	Date         string      `dynamodbav:"date"`
	CreatedAt    time.Time   `dynamodbav:"created_at"`
}

// PayoutKey builds the unique (sponsor, sponsored member, level) key that
// guarantees at most one payout per commission event.
func PayoutKey(sponsorCode, memberCode string, level int) string {
	return fmt.Sprintf("%s#%s#%d", sponsorCode, memberCode, level)
}

// CanClaimLoan reports whether a loan-claim status permits a new claim.
// Processing and Approved are non-terminal: a member carrying one of them
// already has a loan in flight.
func (s LoanClaimStatus) CanClaimLoan() bool {
	return s == LoanNone || s == LoanRejected || s == LoanRepaid || s == ""
}
