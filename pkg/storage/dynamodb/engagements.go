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

// GetEngagement retrieves an engagement from DynamoDB by its ID.
func (s *Store) GetEngagement(ctx context.Context, engagementID string) (*models.Engagement, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.EngagementsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: engagementID},
		},
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get engagement from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("engagement %s: %w", engagementID, storage.ErrNotFound)
	}

	var record engagementRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engagement: %w", err)
	}
	return record.toModel()
}

// ListEngagementsByMember queries both participant indexes and merges the
// results, newest first.
func (s *Store) ListEngagementsByMember(ctx context.Context, memberID string) ([]models.Engagement, error) {
	seen := make(map[string]bool)
	engagements := []models.Engagement{}

	for _, idx := range []struct{ name, key string }{
		{requesterIndex, "requester_id"},
		{providerIndex, "provider_id"},
	} {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.EngagementsTableName),
			IndexName:              aws.String(idx.name),
			KeyConditionExpression: aws.String(idx.key + " = :memberID"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":memberID": &types.AttributeValueMemberS{Value: memberID},
			},
		}
		found, err := s.queryEngagements(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query engagements by %s: %w", idx.key, err)
		}
		for _, e := range found {
			if !seen[e.Id] {
				seen[e.Id] = true
				engagements = append(engagements, e)
			}
		}
	}

	sort.Slice(engagements, func(i, j int) bool { return engagements[i].CreatedAt.After(engagements[j].CreatedAt) })
	return engagements, nil
}

// ListEngagementsByState queries the state index, newest first.
func (s *Store) ListEngagementsByState(ctx context.Context, state models.EngagementState) ([]models.Engagement, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.EngagementsTableName),
		IndexName:              aws.String(engagementStateIndex),
		KeyConditionExpression: aws.String("#state = :state"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state": &types.AttributeValueMemberS{Value: string(state)},
		},
		ScanIndexForward: aws.Bool(false),
	}

	engagements, err := s.queryEngagements(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagements by state: %w", err)
	}
	return engagements, nil
}

func (s *Store) queryEngagements(ctx context.Context, input *dynamodb.QueryInput) ([]models.Engagement, error) {
	items, err := s.query(ctx, input, 0)
	if err != nil {
		return nil, err
	}

	var records []engagementRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engagements: %w", err)
	}
	engagements := make([]models.Engagement, 0, len(records))
	for _, r := range records {
		e, err := r.toModel()
		if err != nil {
			return nil, err
		}
		engagements = append(engagements, *e)
	}
	return engagements, nil
}

// query follows LastEvaluatedKey until the results are exhausted or, when
// limit is positive, until limit items were read.
func (s *Store) query(ctx context.Context, input *dynamodb.QueryInput, limit int32) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		if limit > 0 {
			input.Limit = aws.Int32(limit - int32(len(items)))
		}
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)

		if len(result.LastEvaluatedKey) == 0 || (limit > 0 && int32(len(items)) >= limit) {
			return items, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
