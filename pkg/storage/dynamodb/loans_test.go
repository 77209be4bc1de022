package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
	"github.com/nexlevel/referral-ledger/pkg/storage/dynamodb/mocks"
)

func conditionalCancel(failedIndex, total int) *types.TransactionCanceledException {
	reasons := make([]types.CancellationReason, total)
	for i := range reasons {
		code := "None"
		if i == failedIndex {
			code = "ConditionalCheckFailed"
		}
		reasons[i] = types.CancellationReason{Code: aws.String(code)}
	}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}

func TestCreateLoanClaim(t *testing.T) {
	claim := func() *models.LedgerEntry {
		return &models.LedgerEntry{
			MemberCode: "M1",
			Type:       models.LoanRequest,
			Status:     models.EntryPending,
			Principal:  5000,
		}
	}

	t.Run("Writes Claim And Flips Member Status", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			put := input.TransactItems[0].Put
			update := input.TransactItems[1].Update
			return put != nil && update != nil &&
				*update.ConditionExpression == "attribute_exists(member_code) AND loan_status IN (:none, :rejected, :repaid)"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		entry := claim()
		err := store.CreateLoanClaim(context.Background(), entry)

		assert.NoError(t, err)
		assert.NotEmpty(t, entry.EntryID)
		assert.Equal(t, ledgerPartition, entry.GSI1PK)
		mockClient.AssertExpectations(t)
	})

	t.Run("In-Flight Claim Is Rejected", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(1, 2))

		err := store.CreateLoanClaim(context.Background(), claim())

		assert.ErrorIs(t, err, storage.ErrLoanInFlight)
	})
}

func TestApproveLoan(t *testing.T) {
	loanEntry := &models.LedgerEntry{
		EntryID:     "loan-1",
		MemberCode:  "M1",
		Type:        models.LoanRequest,
		Description: "Loan approved by admin",
	}

	t.Run("Approves Entry And Member Together", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			entryUpdate := input.TransactItems[0].Update
			memberUpdate := input.TransactItems[1].Update
			return *entryUpdate.ConditionExpression == "#status = :pending" &&
				*memberUpdate.ConditionExpression == "loan_status = :processing"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.ApproveLoan(context.Background(), loanEntry, 5000, 4750, 10)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Decided", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(0, 2))

		err := store.ApproveLoan(context.Background(), loanEntry, 5000, 4750, 10)

		assert.ErrorIs(t, err, storage.ErrLoanNotActionable)
	})
}

func TestRejectLoan(t *testing.T) {
	loanEntry := &models.LedgerEntry{EntryID: "loan-1", MemberCode: "M1", Type: models.LoanRequest}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 2
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		assert.NoError(t, store.RejectLoan(context.Background(), loanEntry, "ineligible"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Decided", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(0, 2))

		err := store.RejectLoan(context.Background(), loanEntry, "ineligible")

		assert.ErrorIs(t, err, storage.ErrLoanNotActionable)
	})
}

func TestCountPaidLoans(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := testStore(mockClient)

	entries := []models.LedgerEntry{
		{EntryID: "loan-1", Type: models.LoanRequest, RepaymentStatus: models.RepaymentPaid},
		{EntryID: "loan-2", Type: models.LoanRequest, RepaymentStatus: models.RepaymentPartiallyPaid},
		{EntryID: "loan-3", Type: models.LoanRequest, RepaymentStatus: models.RepaymentPaid},
		{EntryID: "benefit-1", Type: models.LevelBenefit},
	}
	items := make([]map[string]types.AttributeValue, len(entries))
	for i := range entries {
		items[i], _ = attributevalue.MarshalMap(&entries[i])
	}
	mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: items}, nil)

	count, err := store.CountPaidLoans(context.Background(), "M1")

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	mockClient.AssertExpectations(t)
}
