// Package api defines the HTTP request and response types for the referral
// ledger service, together with the server interface the handlers implement.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewMember is the request body for registering a member.
type NewMember struct {
	MemberCode   string  `json:"member_code"`
	Name         string  `json:"name"`
	SponsorCode  string  `json:"sponsor_code,omitempty"`
	PackageValue float64 `json:"package_value,omitempty"`
}

// Member is the API representation of a member.
type Member struct {
	MemberCode      string    `json:"member_code"`
	Name            string    `json:"name"`
	SponsorCode     string    `json:"sponsor_code,omitempty"`
	Status          string    `json:"status"`
	PackageValue    float64   `json:"package_value"`
	DirectReferrals []string  `json:"direct_referrals,omitempty"`
	TotalTeam       int64     `json:"total_team"`
	LoanStatus      string    `json:"loan_status,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewActivation is the request body for activating a member's package.
type NewActivation struct {
	MemberCode  string  `json:"member_code"`
	SponsorCode string  `json:"sponsor_code"`
	PackageAmt  float64 `json:"package_amount"`
}

// ActivationAccepted acknowledges that an activation has been queued.
type ActivationAccepted struct {
	MemberCode string `json:"member_code"`
	Queued     bool   `json:"queued"`
}

// NewLoanClaim is the request body for claiming a loan.
type NewLoanClaim struct {
	MemberCode string `json:"member_code"`
}

// LoanDecision is the request body for approving or rejecting a loan claim.
type LoanDecision struct {
	DecidedBy string `json:"decided_by"`
	Note      string `json:"note,omitempty"`
}

// LoanDue reports how much of a loan is still owed, net of in-flight
// repayment orders.
type LoanDue struct {
	LoanEntryID openapi_types.UUID `json:"loan_entry_id"`
	DueAmount   float64            `json:"due_amount"`
}

// NewRepaymentOrder is the request body for opening a gateway repayment order.
type NewRepaymentOrder struct {
	Amount        float64 `json:"amount"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerPhone string  `json:"customer_phone,omitempty"`
}

// RepaymentOrder is the API representation of an open repayment order.
type RepaymentOrder struct {
	EntryID          openapi_types.UUID `json:"entry_id"`
	OrderRef         string             `json:"order_ref"`
	PaymentSessionID string             `json:"payment_session_id,omitempty"`
	Amount           float64            `json:"amount"`
	Status           string             `json:"status"`
}

// NewManualRepayment is the request body for recording an offline repayment.
type NewManualRepayment struct {
	Amount     float64 `json:"amount"`
	RecordedBy string  `json:"recorded_by"`
	Note       string  `json:"note,omitempty"`
}

// WalletOverview is the API representation of a member's wallet position.
type WalletOverview struct {
	MemberCode         string  `json:"member_code"`
	AvailableBalance   float64 `json:"available_balance"`
	TotalIncome        float64 `json:"total_income"`
	TotalExpenses      float64 `json:"total_expenses"`
	TotalWithdrawal    float64 `json:"total_withdrawal"`
	PendingWithdrawals float64 `json:"pending_withdrawals"`
	LevelBenefits      float64 `json:"level_benefits"`
	DirectBenefits     float64 `json:"direct_benefits"`
	LoanCredited       float64 `json:"loan_credited"`
	LoanRepaid         float64 `json:"loan_repaid"`
	OutstandingLoan    float64 `json:"outstanding_loan"`
	TransactionCount   int     `json:"transaction_count"`
}

// NewWithdrawal is the request body for requesting a withdrawal.
type NewWithdrawal struct {
	Amount float64 `json:"amount"`
}

// LedgerEntry is the API representation of one ledger record.
type LedgerEntry struct {
	EntryID     openapi_types.UUID `json:"entry_id"`
	MemberCode  string             `json:"member_code"`
	Type        string             `json:"entry_type"`
	Description string             `json:"description,omitempty"`
	Credit      float64            `json:"credit"`
	Debit       float64            `json:"debit"`
	Status      string             `json:"status"`
	Level       int                `json:"level,omitempty"`
	DueAmount   *float64           `json:"due_amount,omitempty"`
	Deduction   float64            `json:"deduction,omitempty"`
	NetAmount   float64            `json:"net_amount,omitempty"`
	OrderRef    string             `json:"order_ref,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Payout is the API representation of one commission payout.
type Payout struct {
	PayoutKey    string    `json:"payout_key"`
	ReceiverCode string    `json:"receiver_code"`
	SourceCode   string    `json:"source_code"`
	Level        int       `json:"level"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

// Error is the standard error response body.
type Error struct {
	Message string `json:"message"`
}
