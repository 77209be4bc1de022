package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexlevel/referral-ledger/pkg/models"
)

func TestCompute(t *testing.T) {
	t.Run("Folds Benefits And Withdrawals", func(t *testing.T) {
		entries := []models.LedgerEntry{
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 100},
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 25},
			{Type: models.DirectBenefit, Status: models.EntryCompleted, Credit: 50},
			{Type: models.Withdrawal, Status: models.EntryCompleted, Debit: 60},
		}

		o := Compute(entries)

		assert.Equal(t, 115.0, o.AvailableBalance)
		assert.Equal(t, 175.0, o.TotalIncome)
		assert.Equal(t, 60.0, o.TotalExpenses)
		assert.Equal(t, 125.0, o.LevelBenefits)
		assert.Equal(t, 50.0, o.DirectBenefits)
		assert.Equal(t, 60.0, o.TotalWithdrawal)
		assert.Equal(t, 4, o.TransactionCount)
	})

	t.Run("Pending Withdrawals Reduce The Balance", func(t *testing.T) {
		entries := []models.LedgerEntry{
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 1000},
			{Type: models.Withdrawal, Status: models.EntryPending, Debit: 600},
		}

		o := Compute(entries)

		assert.Equal(t, 400.0, o.AvailableBalance)
		assert.Equal(t, 600.0, o.PendingWithdrawals)
		// A pending withdrawal is not yet an expense.
		assert.Zero(t, o.TotalWithdrawal)
	})

	t.Run("Loan Entries Never Touch The Spendable Balance", func(t *testing.T) {
		entries := []models.LedgerEntry{
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 300},
			{Type: models.LoanRequest, Status: models.EntryApproved, Principal: 5000, Credited: 4750, DueAmount: 3500},
			{Type: models.LoanRepaymentPayment, Status: models.EntryCompleted, Debit: 1500},
		}

		o := Compute(entries)

		assert.Equal(t, 300.0, o.AvailableBalance)
		assert.Equal(t, 4750.0, o.LoanCredited)
		assert.Equal(t, 1500.0, o.LoanRepaid)
		assert.Equal(t, 3500.0, o.OutstandingLoan)
		// Loan entries do not count as wallet transactions.
		assert.Equal(t, 1, o.TransactionCount)
	})

	t.Run("Rejected And Failed Entries Are Inert", func(t *testing.T) {
		entries := []models.LedgerEntry{
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 200},
			{Type: models.Withdrawal, Status: models.EntryRejected, Debit: 500},
			{Type: models.LevelBenefit, Status: models.EntryFailed, Credit: 999},
		}

		o := Compute(entries)

		assert.Equal(t, 200.0, o.AvailableBalance)
		assert.Equal(t, 200.0, o.TotalIncome)
	})

	t.Run("Balance Floors At Zero", func(t *testing.T) {
		entries := []models.LedgerEntry{
			{Type: models.Withdrawal, Status: models.EntryCompleted, Debit: 100},
		}

		o := Compute(entries)

		assert.Zero(t, o.AvailableBalance)
	})

	t.Run("Empty Ledger", func(t *testing.T) {
		o := Compute(nil)
		assert.Zero(t, o.AvailableBalance)
		assert.Zero(t, o.TransactionCount)
	})
}
