package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// CreatePayoutWithLedgerEntry persists a payout and its paired LevelBenefit
// ledger entry in a single TransactWriteItems call. The conditional put on
// the payout key turns a replayed activation event into ErrDuplicatePayout
// instead of a second payout, and a failure of either write rolls back both.
func (s *Store) CreatePayoutWithLedgerEntry(ctx context.Context, payout *models.Payout, entry *models.LedgerEntry) error {
	now := time.Now()
	payout.CreatedAt = now

	if entry.EntryID == "" {
		entry.EntryID = uuid.New().String()
	}
	entry.RelatedPayoutKey = payout.PayoutKey
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.GSI1PK = ledgerPartition

	payoutAV, err := attributevalue.MarshalMap(payout)
	if err != nil {
		return fmt.Errorf("failed to marshal payout: %w", err)
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the payout, keyed by the uniqueness triple.
				Put: &types.Put{
					TableName:           aws.String(s.PayoutsTableName),
					Item:                payoutAV,
					ConditionExpression: aws.String("attribute_not_exists(payout_key)"),
				},
			},
			{
				// Operation 2: Create the paired ledger entry.
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("payout %s: %w", payout.PayoutKey, storage.ErrDuplicatePayout)
				}
			}
		}
		return fmt.Errorf("failed to execute payout transaction: %w", err)
	}

	return nil
}

// ListPayoutsByReceiver retrieves all payouts awarded to a member.
func (s *Store) ListPayoutsByReceiver(ctx context.Context, receiverCode string) ([]models.Payout, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.PayoutsTableName),
		IndexName:              aws.String(receiverGSI),
		KeyConditionExpression: aws.String("receiver_code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: receiverCode},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query payouts by receiver: %w", err)
	}

	var payouts []models.Payout
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &payouts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payouts: %w", err)
	}

	return payouts, nil
}
