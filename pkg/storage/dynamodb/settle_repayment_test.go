package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
	"github.com/nexlevel/referral-ledger/pkg/storage/dynamodb/mocks"
)

func pendingOrderEntry(dueAfter float64) *models.LedgerEntry {
	return &models.LedgerEntry{
		EntryID:     "pay-1",
		MemberCode:  "M1",
		Type:        models.LoanRepaymentPayment,
		Status:      models.EntryPending,
		LoanEntryID: "loan-1",
		OrderRef:    "order_123",
		Snapshot: &models.RepaymentSnapshot{
			Requested: 5000 - dueAfter,
			DueBefore: 5000,
			DueAfter:  dueAfter,
		},
	}
}

func TestSettleRepaymentOrder(t *testing.T) {
	t.Run("Partial Payment Writes Two Items", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			entryUpdate := input.TransactItems[0].Update
			loanUpdate := input.TransactItems[1].Update
			return *entryUpdate.ConditionExpression == "#status = :pending AND callback_applied = :false" &&
				*loanUpdate.ConditionExpression == "due_amount = :before"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.SettleRepaymentOrder(context.Background(), pendingOrderEntry(2000))

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Full Payment Also Flips The Member", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 3 {
				return false
			}
			memberUpdate := input.TransactItems[2].Update
			return *memberUpdate.ConditionExpression == "attribute_exists(member_code)"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.SettleRepaymentOrder(context.Background(), pendingOrderEntry(0))

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Replayed Callback", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(0, 2))

		err := store.SettleRepaymentOrder(context.Background(), pendingOrderEntry(2000))

		assert.ErrorIs(t, err, storage.ErrCallbackAlreadyApplied)
	})

	t.Run("Due Amount Moved Under The Snapshot", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(1, 2))

		err := store.SettleRepaymentOrder(context.Background(), pendingOrderEntry(2000))

		assert.ErrorIs(t, err, storage.ErrDueAmountMoved)
	})

	t.Run("Missing Member Record", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(2, 3))

		err := store.SettleRepaymentOrder(context.Background(), pendingOrderEntry(0))

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Missing Snapshot", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		entry := pendingOrderEntry(2000)
		entry.Snapshot = nil

		err := store.SettleRepaymentOrder(context.Background(), entry)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no snapshot")
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})
}

func TestRecordManualRepayment(t *testing.T) {
	manualEntry := func(dueAfter float64) *models.LedgerEntry {
		entry := pendingOrderEntry(dueAfter)
		entry.EntryID = ""
		entry.Type = models.LoanRepayment
		entry.OrderRef = ""
		return entry
	}

	t.Run("Creates Completed Entry And Applies Snapshot", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			put := input.TransactItems[0].Put
			loanUpdate := input.TransactItems[1].Update
			return put != nil && *loanUpdate.ConditionExpression == "due_amount = :before"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		entry := manualEntry(2000)
		err := store.RecordManualRepayment(context.Background(), entry)

		assert.NoError(t, err)
		assert.NotEmpty(t, entry.EntryID)
		assert.Equal(t, models.EntryCompleted, entry.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Full Repayment Also Flips The Member", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 3
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		assert.NoError(t, store.RecordManualRepayment(context.Background(), manualEntry(0)))
		mockClient.AssertExpectations(t)
	})

	t.Run("Due Amount Moved Under The Snapshot", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(1, 2))

		err := store.RecordManualRepayment(context.Background(), manualEntry(2000))

		assert.ErrorIs(t, err, storage.ErrDueAmountMoved)
	})

	t.Run("Missing Member Record", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(2, 3))

		err := store.RecordManualRepayment(context.Background(), manualEntry(0))

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Missing Snapshot", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		entry := manualEntry(2000)
		entry.Snapshot = nil

		err := store.RecordManualRepayment(context.Background(), entry)

		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})
}
