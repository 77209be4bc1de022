package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage/mocks"
)

func TestWithdraw(t *testing.T) {
	activeMember := &models.Member{MemberCode: "M1", Status: models.MemberActive}
	richLedger := []models.LedgerEntry{
		{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 2000, CreatedAt: time.Now().AddDate(0, 0, -3)},
	}

	t.Run("Records A Pending Entry With The Deduction", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "M1").Return(activeMember, nil)
		mockStore.On("ListLedgerEntriesByMember", mock.Anything, "M1").Return(richLedger, nil)
		mockStore.On("CreateLedgerEntry", mock.Anything, mock.MatchedBy(func(e *models.LedgerEntry) bool {
			return e.Type == models.Withdrawal &&
				e.Status == models.EntryPending &&
				e.Debit == 1000 &&
				e.Deduction == 150 &&
				e.NetAmount == 850
		})).Return(func(ctx context.Context, e *models.LedgerEntry) *models.LedgerEntry { return e }, nil)

		service := NewService(mockStore, mockStore)
		entry, err := service.Withdraw(context.Background(), "M1", 1000)

		assert.NoError(t, err)
		assert.Equal(t, 850.0, entry.NetAmount)
		mockStore.AssertExpectations(t)
	})

	t.Run("Band Limits", func(t *testing.T) {
		service := NewService(new(mocks.Storage), new(mocks.Storage))

		_, err := service.Withdraw(context.Background(), "M1", 499.99)
		assert.ErrorIs(t, err, ErrBelowMinimum)

		_, err = service.Withdraw(context.Background(), "M1", 1000.01)
		assert.ErrorIs(t, err, ErrAboveMaximum)
	})

	t.Run("Band Boundaries Are Inclusive", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "M1").Return(activeMember, nil)
		mockStore.On("ListLedgerEntriesByMember", mock.Anything, "M1").Return(richLedger, nil)
		mockStore.On("CreateLedgerEntry", mock.Anything, mock.Anything).
			Return(func(ctx context.Context, e *models.LedgerEntry) *models.LedgerEntry { return e }, nil)

		service := NewService(mockStore, mockStore)

		_, err := service.Withdraw(context.Background(), "M1", 500)
		assert.NoError(t, err)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "M1").Return(activeMember, nil)
		mockStore.On("ListLedgerEntriesByMember", mock.Anything, "M1").Return([]models.LedgerEntry{
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 400, CreatedAt: time.Now().AddDate(0, 0, -1)},
		}, nil)

		service := NewService(mockStore, mockStore)
		_, err := service.Withdraw(context.Background(), "M1", 500)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
		mockStore.AssertNotCalled(t, "CreateLedgerEntry", mock.Anything, mock.Anything)
	})

	t.Run("Loan Credit Does Not Fund Withdrawals", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "M1").Return(activeMember, nil)
		mockStore.On("ListLedgerEntriesByMember", mock.Anything, "M1").Return([]models.LedgerEntry{
			{Type: models.LoanRequest, Status: models.EntryApproved, Principal: 5000, Credited: 4750, DueAmount: 5000},
		}, nil)

		service := NewService(mockStore, mockStore)
		_, err := service.Withdraw(context.Background(), "M1", 500)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("One Withdrawal Per Day", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "M1").Return(activeMember, nil)
		mockStore.On("ListLedgerEntriesByMember", mock.Anything, "M1").Return([]models.LedgerEntry{
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 5000, CreatedAt: time.Now().AddDate(0, 0, -2)},
			{Type: models.Withdrawal, Status: models.EntryPending, Debit: 600, CreatedAt: time.Now()},
		}, nil)

		service := NewService(mockStore, mockStore)
		_, err := service.Withdraw(context.Background(), "M1", 500)

		assert.ErrorIs(t, err, ErrDailyLimit)
	})

	t.Run("Yesterday's Withdrawal Does Not Block Today", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "M1").Return(activeMember, nil)
		mockStore.On("ListLedgerEntriesByMember", mock.Anything, "M1").Return([]models.LedgerEntry{
			{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 5000, CreatedAt: time.Now().AddDate(0, 0, -2)},
			{Type: models.Withdrawal, Status: models.EntryCompleted, Debit: 600, CreatedAt: time.Now().AddDate(0, 0, -1)},
		}, nil)
		mockStore.On("CreateLedgerEntry", mock.Anything, mock.Anything).
			Return(func(ctx context.Context, e *models.LedgerEntry) *models.LedgerEntry { return e }, nil)

		service := NewService(mockStore, mockStore)
		_, err := service.Withdraw(context.Background(), "M1", 500)

		assert.NoError(t, err)
	})
}

func TestOverview(t *testing.T) {
	mockStore := new(mocks.Storage)
	mockStore.On("GetMember", mock.Anything, "M1").Return(&models.Member{MemberCode: "M1"}, nil)
	mockStore.On("ListLedgerEntriesByMember", mock.Anything, "M1").Return([]models.LedgerEntry{
		{Type: models.LevelBenefit, Status: models.EntryCompleted, Credit: 100},
	}, nil)

	service := NewService(mockStore, mockStore)
	overview, err := service.Overview(context.Background(), "M1")

	assert.NoError(t, err)
	assert.Equal(t, 100.0, overview.AvailableBalance)
}
