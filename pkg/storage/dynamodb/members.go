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
	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// GetMember retrieves a member from DynamoDB by their member code.
func (s *Store) GetMember(ctx context.Context, memberCode string) (*models.Member, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"member_code": memberCode})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal member code: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.MembersTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get member from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("member %s: %w", memberCode, storage.ErrNotFound)
	}

	var member models.Member
	if err := attributevalue.UnmarshalMap(result.Item, &member); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member: %w", err)
	}

	return &member, nil
}

// CreateMember creates a new member record.
func (s *Store) CreateMember(ctx context.Context, member *models.Member) (*models.Member, error) {
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.LoanStatus == "" {
		member.LoanStatus = models.LoanNone
	}

	item, err := attributevalue.MarshalMap(member)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal member: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.MembersTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(member_code)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("member %s already exists", member.MemberCode)
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// ActivateMember flips a member to active once their package payment has
// cleared. Replaying the activation is a no-op.
func (s *Store) ActivateMember(ctx context.Context, memberCode string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.MembersTableName),
		Key: map[string]types.AttributeValue{
			"member_code": &types.AttributeValueMemberS{Value: memberCode},
		},
		UpdateExpression:    aws.String("SET #status = :active, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(member_code)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: string(models.MemberActive)},
			":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("member %s: %w", memberCode, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to activate member: %w", err)
	}

	return nil
}

// AddDirectReferral adds memberCode to the sponsor's direct-referral set and
// increments the team counter in the same update. The condition on set
// membership gates both mutations, so replaying the same activation event
// neither duplicates the set entry nor double-counts the team size.
// It returns whether the referral was newly added.
func (s *Store) AddDirectReferral(ctx context.Context, sponsorCode, memberCode string) (bool, error) {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.MembersTableName),
		Key: map[string]types.AttributeValue{
			"member_code": &types.AttributeValueMemberS{Value: sponsorCode},
		},
		UpdateExpression:    aws.String("ADD direct_referrals :member, total_team :one SET updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(member_code) AND (attribute_not_exists(direct_referrals) OR NOT contains(direct_referrals, :code))"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":member": &types.AttributeValueMemberSS{Value: []string{memberCode}},
			":code":   &types.AttributeValueMemberS{Value: memberCode},
			":one":    &types.AttributeValueMemberN{Value: "1"},
			":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Already referred (or sponsor missing); treat the replay as a no-op.
			return false, nil
		}
		return false, fmt.Errorf("failed to update sponsor referrals: %w", err)
	}

	return true, nil
}
