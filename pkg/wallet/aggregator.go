// Package wallet derives spendable balances by folding the ledger. Balances
// are never cached: every read recomputes from the entries.
package wallet

import (
	"github.com/nexlevel/referral-ledger/pkg/models"
)

// Overview is a member's derived wallet position.
type Overview struct {
	AvailableBalance   float64
	TotalIncome        float64
	TotalExpenses      float64
	TotalWithdrawal    float64
	PendingWithdrawals float64
	LevelBenefits      float64
	DirectBenefits     float64

	// Loans are an outstanding liability, not spendable funds; they are
	// reported separately and excluded from the balance fold.
	LoanCredited    float64
	LoanRepaid      float64
	OutstandingLoan float64

	TransactionCount int
}

// Compute folds a member's ledger slice into an Overview. Completed, Pending,
// and Approved non-loan entries count toward the available balance (pending
// withdrawals already reduce it); benefit and withdrawal breakdowns count
// Completed entries only.
func Compute(entries []models.LedgerEntry) Overview {
	var o Overview

	for _, entry := range entries {
		if entry.Type.IsLoanType() {
			if entry.Type == models.LoanRequest && (entry.Status == models.EntryApproved || entry.Status == models.EntryCompleted) {
				o.LoanCredited += entry.Credited
				o.LoanRepaid += entry.Principal - entry.DueAmount
				o.OutstandingLoan += entry.DueAmount
			}
			continue
		}

		o.TransactionCount++

		switch entry.Status {
		case models.EntryCompleted, models.EntryPending, models.EntryApproved:
			o.AvailableBalance += entry.Credit - entry.Debit
		}

		if entry.Status == models.EntryCompleted {
			o.TotalIncome += entry.Credit
			o.TotalExpenses += entry.Debit
			switch entry.Type {
			case models.Withdrawal:
				o.TotalWithdrawal += entry.Debit
			case models.LevelBenefit:
				o.LevelBenefits += entry.Credit
			case models.DirectBenefit:
				o.DirectBenefits += entry.Credit
			}
		}

		if entry.Type == models.Withdrawal && entry.Status == models.EntryPending {
			o.PendingWithdrawals += entry.Debit
		}
	}

	if o.AvailableBalance < 0 {
		o.AvailableBalance = 0
	}
	if o.OutstandingLoan < 0 {
		o.OutstandingLoan = 0
	}
	return o
}
