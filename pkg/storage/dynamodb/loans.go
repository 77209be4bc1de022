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

// CreateLoanClaim persists the Pending claim entry and flips the member's
// loan-claim status to Processing in one atomic write. The condition on the
// member's current loan status rejects a second in-flight loan even when two
// claims race.
func (s *Store) CreateLoanClaim(ctx context.Context, claim *models.LedgerEntry) error {
	now := time.Now()
	if claim.EntryID == "" {
		claim.EntryID = uuid.New().String()
	}
	claim.CreatedAt = now
	claim.UpdatedAt = now
	claim.GSI1PK = ledgerPartition

	claimAV, err := attributevalue.MarshalMap(claim)
	if err != nil {
		return fmt.Errorf("failed to marshal loan claim: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the Pending loan-request entry.
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                claimAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
			{
				// Operation 2: Flip the member's loan-claim status to Processing.
				Update: &types.Update{
					TableName: aws.String(s.MembersTableName),
					Key: map[string]types.AttributeValue{
						"member_code": &types.AttributeValueMemberS{Value: claim.MemberCode},
					},
					UpdateExpression:    aws.String("SET loan_status = :processing, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(member_code) AND loan_status IN (:none, :rejected, :repaid)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":processing": &types.AttributeValueMemberS{Value: string(models.LoanProcessing)},
						":none":       &types.AttributeValueMemberS{Value: string(models.LoanNone)},
						":rejected":   &types.AttributeValueMemberS{Value: string(models.LoanRejected)},
						":repaid":     &types.AttributeValueMemberS{Value: string(models.LoanRepaid)},
						":now":        &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("member %s: %w", claim.MemberCode, storage.ErrLoanInFlight)
				}
			}
		}
		return fmt.Errorf("failed to execute loan claim transaction: %w", err)
	}

	return nil
}

// ApproveLoan marks a claim Approved with the server-derived tier amounts and
// flips the member's loan-claim status Processing -> Approved. Both legs are
// conditional on the current state, so a repeated admin action is rejected
// rather than reapplied.
func (s *Store) ApproveLoan(ctx context.Context, loan *models.LedgerEntry, principal, credited float64, installments int) error {
	now := time.Now()

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Approve the loan entry and seed repayment tracking.
				Update: &types.Update{
					TableName: aws.String(s.LedgerTableName),
					Key: map[string]types.AttributeValue{
						"entry_id": &types.AttributeValueMemberS{Value: loan.EntryID},
					},
					UpdateExpression: aws.String("SET #status = :approved, description = :desc, principal = :principal, credit = :credited, credited = :credited, " +
						"due_amount = :principal, repayment_status = :unpaid, installments = :installments, updated_at = :now"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":approved":     &types.AttributeValueMemberS{Value: string(models.EntryApproved)},
						":pending":      &types.AttributeValueMemberS{Value: string(models.EntryPending)},
						":desc":         &types.AttributeValueMemberS{Value: loan.Description},
						":principal":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", principal)},
						":credited":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", credited)},
						":unpaid":       &types.AttributeValueMemberS{Value: string(models.RepaymentUnpaid)},
						":installments": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", installments)},
						":now":          &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
			{
				// Operation 2: Flip the member to Approved.
				Update: &types.Update{
					TableName: aws.String(s.MembersTableName),
					Key: map[string]types.AttributeValue{
						"member_code": &types.AttributeValueMemberS{Value: loan.MemberCode},
					},
					UpdateExpression:    aws.String("SET loan_status = :approved, updated_at = :now"),
					ConditionExpression: aws.String("loan_status = :processing"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":approved":   &types.AttributeValueMemberS{Value: string(models.LoanApproved)},
						":processing": &types.AttributeValueMemberS{Value: string(models.LoanProcessing)},
						":now":        &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("loan %s: %w", loan.EntryID, storage.ErrLoanNotActionable)
				}
			}
		}
		return fmt.Errorf("failed to execute loan approval transaction: %w", err)
	}

	return nil
}

// RejectLoan marks a claim Rejected and clears the member's in-flight claim
// status.
func (s *Store) RejectLoan(ctx context.Context, loan *models.LedgerEntry, note string) error {
	now := time.Now()

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.LedgerTableName),
					Key: map[string]types.AttributeValue{
						"entry_id": &types.AttributeValueMemberS{Value: loan.EntryID},
					},
					UpdateExpression:    aws.String("SET #status = :rejected, description = :note, updated_at = :now"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":rejected": &types.AttributeValueMemberS{Value: string(models.EntryRejected)},
						":pending":  &types.AttributeValueMemberS{Value: string(models.EntryPending)},
						":note":     &types.AttributeValueMemberS{Value: note},
						":now":      &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(s.MembersTableName),
					Key: map[string]types.AttributeValue{
						"member_code": &types.AttributeValueMemberS{Value: loan.MemberCode},
					},
					UpdateExpression:    aws.String("SET loan_status = :rejected, updated_at = :now"),
					ConditionExpression: aws.String("loan_status = :processing"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":rejected":   &types.AttributeValueMemberS{Value: string(models.LoanRejected)},
						":processing": &types.AttributeValueMemberS{Value: string(models.LoanProcessing)},
						":now":        &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("loan %s: %w", loan.EntryID, storage.ErrLoanNotActionable)
				}
			}
		}
		return fmt.Errorf("failed to execute loan rejection transaction: %w", err)
	}

	return nil
}

// CountPaidLoans counts the member's fully repaid prior loans by folding the
// member's ledger slice rather than trusting a cached counter.
func (s *Store) CountPaidLoans(ctx context.Context, memberCode string) (int, error) {
	entries, err := s.ListLedgerEntriesByMember(ctx, memberCode)
	if err != nil {
		return 0, fmt.Errorf("failed to list ledger entries for paid-loan count: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.Type == models.LoanRequest && entry.RepaymentStatus == models.RepaymentPaid {
			count++
		}
	}
	return count, nil
}
