package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
)

// GetMember retrieves a member's account from DynamoDB by their member ID.
func (s *Store) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.MembersTableName),
		Key: map[string]types.AttributeValue{
			"member_id": &types.AttributeValueMemberS{Value: memberID},
		},
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get member from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}

	var record memberRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member: %w", err)
	}
	return record.toModel()
}

// ListMembers scans every member account, ordered by member ID.
func (s *Store) ListMembers(ctx context.Context) ([]models.Member, error) {
	input := &dynamodb.ScanInput{
		TableName:      aws.String(s.MembersTableName),
		ConsistentRead: aws.Bool(true),
	}

	members := []models.Member{}
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan members table: %w", err)
		}

		var records []memberRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal members: %w", err)
		}
		for _, r := range records {
			m, err := r.toModel()
			if err != nil {
				return nil, err
			}
			members = append(members, *m)
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.Slice(members, func(i, j int) bool { return members[i].MemberId < members[j].MemberId })
	return members, nil
}
