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

// ledgerPartition is the shared partition value for the status GSI, so the
// reconciliation worker can query recent entries by status.
const ledgerPartition = "LEDGER_ENTRIES"

// CreateLedgerEntry appends a single entry to the ledger.
func (s *Store) CreateLedgerEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	now := time.Now()
	if entry.EntryID == "" {
		entry.EntryID = uuid.New().String()
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.GSI1PK = ledgerPartition

	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger entry: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.LedgerTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return entry, nil
}

// GetLedgerEntry retrieves a ledger entry from DynamoDB by its ID.
func (s *Store) GetLedgerEntry(ctx context.Context, entryID string) (*models.LedgerEntry, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"entry_id": entryID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.LedgerTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("ledger entry %s: %w", entryID, storage.ErrNotFound)
	}

	var entry models.LedgerEntry
	if err := attributevalue.UnmarshalMap(result.Item, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
	}

	return &entry, nil
}

// GetLedgerEntryByOrderRef retrieves the ledger entry linked to a
// payment-gateway order reference.
func (s *Store) GetLedgerEntryByOrderRef(ctx context.Context, orderRef string) (*models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(orderRefGSI),
		KeyConditionExpression: aws.String("order_ref = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: orderRef},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entry by order ref: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, fmt.Errorf("order %s: %w", orderRef, storage.ErrNotFound)
	}

	var entry models.LedgerEntry
	if err := attributevalue.UnmarshalMap(result.Items[0], &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
	}

	return &entry, nil
}

// ListLedgerEntriesByMember retrieves all ledger entries for a member.
func (s *Store) ListLedgerEntriesByMember(ctx context.Context, memberCode string) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(memberCodeGSI),
		KeyConditionExpression: aws.String("member_code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: memberCode},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries by member: %w", err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
	}

	return entries, nil
}

// ListLedgerEntriesByLoan retrieves all entries linked to a loan entry,
// including in-flight repayment orders.
func (s *Store) ListLedgerEntriesByLoan(ctx context.Context, loanEntryID string) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(loanEntryGSI),
		KeyConditionExpression: aws.String("loan_entry_id = :loan"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":loan": &types.AttributeValueMemberS{Value: loanEntryID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries by loan: %w", err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
	}

	return entries, nil
}

// GetStuckRepaymentOrders retrieves repayment-payment entries that have been
// Pending for longer than maxAge, for the reconciliation worker to re-drive.
func (s *Store) GetStuckRepaymentOrders(ctx context.Context, maxAge time.Duration) ([]models.LedgerEntry, error) {
	cutoffTime := time.Now().Add(-maxAge)
	cutoffTimeStr, err := cutoffTime.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(statusGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		FilterExpression:       aws.String("entry_type = :rtype AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.EntryPending)},
			":rtype":  &types.AttributeValueMemberS{Value: string(models.LoanRepaymentPayment)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoffTimeStr)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for stuck repayment orders: %w", err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stuck repayment orders: %w", err)
	}

	return entries, nil
}

// MarkEntryFailed flips an entry to Failed with a diagnostic description. The
// callback-applied flag is set in the same conditional update, so a replayed
// callback cannot re-fail (or re-settle) the entry.
func (s *Store) MarkEntryFailed(ctx context.Context, entryID, reason string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.LedgerTableName),
		Key: map[string]types.AttributeValue{
			"entry_id": &types.AttributeValueMemberS{Value: entryID},
		},
		UpdateExpression:    aws.String("SET #status = :failed, description = :reason, callback_applied = :true, callback_applied_at = :now, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(entry_id) AND callback_applied = :false"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed": &types.AttributeValueMemberS{Value: string(models.EntryFailed)},
			":reason": &types.AttributeValueMemberS{Value: reason},
			":true":   &types.AttributeValueMemberBOOL{Value: true},
			":false":  &types.AttributeValueMemberBOOL{Value: false},
			":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrCallbackAlreadyApplied
		}
		return fmt.Errorf("failed to mark ledger entry failed: %w", err)
	}

	return nil
}
