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

// SettleRepaymentOrder applies a verified gateway confirmation to an existing
// Pending repayment-payment entry. Everything happens in one
// TransactWriteItems call:
//  1. The repayment entry transitions Pending -> Completed while its
//     callback-applied flag transitions false -> true. A replayed callback
//     fails this condition and surfaces ErrCallbackAlreadyApplied.
//  2. The loan entry's due amount moves from the snapshot baseline to the
//     snapshot result via compare-and-swap. A concurrent settlement that got
//     there first fails this condition and surfaces ErrDueAmountMoved.
//  3. When the snapshot fully clears the loan, the member's loan-claim status
//     flips to Repaid, unlocking the next tier. The flip is not conditioned
//     on the current claim status: replay safety comes from operation 1, and
//     a repayment that clears the loan must never be rolled back by member
//     state.
func (s *Store) SettleRepaymentOrder(ctx context.Context, repay *models.LedgerEntry) error {
	if repay.Snapshot == nil {
		return fmt.Errorf("repayment entry %s has no snapshot", repay.EntryID)
	}
	snap := repay.Snapshot
	now := time.Now()

	fullyPaid := snap.DueAfter <= 0
	repaymentStatus := models.RepaymentPartiallyPaid
	if fullyPaid {
		repaymentStatus = models.RepaymentPaid
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: Complete the repayment entry; fuse the idempotency
			// flag transition with the status change.
			Update: &types.Update{
				TableName: aws.String(s.LedgerTableName),
				Key: map[string]types.AttributeValue{
					"entry_id": &types.AttributeValueMemberS{Value: repay.EntryID},
				},
				UpdateExpression:    aws.String("SET #status = :completed, callback_applied = :true, callback_applied_at = :now, updated_at = :now"),
				ConditionExpression: aws.String("#status = :pending AND callback_applied = :false"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":completed": &types.AttributeValueMemberS{Value: string(models.EntryCompleted)},
					":pending":   &types.AttributeValueMemberS{Value: string(models.EntryPending)},
					":true":      &types.AttributeValueMemberBOOL{Value: true},
					":false":     &types.AttributeValueMemberBOOL{Value: false},
					":now":       &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
				},
			},
		},
		{
			// Operation 2: Move the loan's due amount off the snapshot baseline.
			Update: &types.Update{
				TableName: aws.String(s.LedgerTableName),
				Key: map[string]types.AttributeValue{
					"entry_id": &types.AttributeValueMemberS{Value: repay.LoanEntryID},
				},
				UpdateExpression:    aws.String("SET due_amount = :after, repayment_status = :repayment_status, updated_at = :now"),
				ConditionExpression: aws.String("due_amount = :before"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":after":            &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", snap.DueAfter)},
					":before":           &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", snap.DueBefore)},
					":repayment_status": &types.AttributeValueMemberS{Value: string(repaymentStatus)},
					":now":              &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
				},
			},
		},
	}

	if fullyPaid {
		items = append(items, types.TransactWriteItem{
			// Operation 3: Unlock tier progression.
			Update: &types.Update{
				TableName: aws.String(s.MembersTableName),
				Key: map[string]types.AttributeValue{
					"member_code": &types.AttributeValueMemberS{Value: repay.MemberCode},
				},
				UpdateExpression:    aws.String("SET loan_status = :repaid, updated_at = :now"),
				ConditionExpression: aws.String("attribute_exists(member_code)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":repaid": &types.AttributeValueMemberS{Value: string(models.LoanRepaid)},
					":now":    &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
				},
			},
		})
	}

	if _, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for i, reason := range txc.CancellationReasons {
				if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
					continue
				}
				switch i {
				case 0:
					return fmt.Errorf("repayment %s: %w", repay.EntryID, storage.ErrCallbackAlreadyApplied)
				case 1:
					return fmt.Errorf("loan %s: %w", repay.LoanEntryID, storage.ErrDueAmountMoved)
				default:
					return fmt.Errorf("member %s: %w", repay.MemberCode, storage.ErrNotFound)
				}
			}
		}
		return fmt.Errorf("failed to execute repayment settlement transaction: %w", err)
	}

	return nil
}

// RecordManualRepayment creates a Completed offline-repayment entry and
// applies its snapshot to the loan in the same write. The structure mirrors
// SettleRepaymentOrder; the only difference is that the repayment entry is a
// fresh put instead of a Pending order flipped in place.
func (s *Store) RecordManualRepayment(ctx context.Context, repay *models.LedgerEntry) error {
	if repay.Snapshot == nil {
		return fmt.Errorf("repayment entry has no snapshot")
	}
	snap := repay.Snapshot
	now := time.Now()

	if repay.EntryID == "" {
		repay.EntryID = uuid.New().String()
	}
	repay.Status = models.EntryCompleted
	repay.CreatedAt = now
	repay.UpdatedAt = now
	repay.GSI1PK = ledgerPartition

	repayAV, err := attributevalue.MarshalMap(repay)
	if err != nil {
		return fmt.Errorf("failed to marshal repayment entry: %w", err)
	}

	fullyPaid := snap.DueAfter <= 0
	repaymentStatus := models.RepaymentPartiallyPaid
	if fullyPaid {
		repaymentStatus = models.RepaymentPaid
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.LedgerTableName),
				Item:                repayAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		},
		{
			Update: &types.Update{
				TableName: aws.String(s.LedgerTableName),
				Key: map[string]types.AttributeValue{
					"entry_id": &types.AttributeValueMemberS{Value: repay.LoanEntryID},
				},
				UpdateExpression:    aws.String("SET due_amount = :after, repayment_status = :repayment_status, updated_at = :now"),
				ConditionExpression: aws.String("due_amount = :before"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":after":            &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", snap.DueAfter)},
					":before":           &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", snap.DueBefore)},
					":repayment_status": &types.AttributeValueMemberS{Value: string(repaymentStatus)},
					":now":              &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
				},
			},
		},
	}

	if fullyPaid {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(s.MembersTableName),
				Key: map[string]types.AttributeValue{
					"member_code": &types.AttributeValueMemberS{Value: repay.MemberCode},
				},
				UpdateExpression:    aws.String("SET loan_status = :repaid, updated_at = :now"),
				ConditionExpression: aws.String("attribute_exists(member_code)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":repaid": &types.AttributeValueMemberS{Value: string(models.LoanRepaid)},
					":now":    &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
				},
			},
		})
	}

	if _, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for i, reason := range txc.CancellationReasons {
				if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
					continue
				}
				switch i {
				case 0:
					return fmt.Errorf("repayment %s: %w", repay.EntryID, storage.ErrCallbackAlreadyApplied)
				case 1:
					return fmt.Errorf("loan %s: %w", repay.LoanEntryID, storage.ErrDueAmountMoved)
				default:
					return fmt.Errorf("member %s: %w", repay.MemberCode, storage.ErrNotFound)
				}
			}
		}
		return fmt.Errorf("failed to execute manual repayment transaction: %w", err)
	}

	return nil
}
