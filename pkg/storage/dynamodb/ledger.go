package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/hive-timebank/pkg/models"
)

// ListLedgerEntries retrieves the most recent ledger entries across all members.
// A limit of zero or less returns the whole journal.
func (s *Store) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(ledgerIndex),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: ledgerPartition},
		},
		ScanIndexForward: aws.Bool(false), // Sort by timestamp in descending order
	}

	entries, err := s.queryEntries(ctx, input, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query for ledger entries: %w", err)
	}
	return entries, nil
}

// ListMemberLedgerEntries retrieves the most recent ledger entries of one member.
func (s *Store) ListMemberLedgerEntries(ctx context.Context, memberID string, limit int32) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(memberLedgerIndex),
		KeyConditionExpression: aws.String("member_id = :memberID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":memberID": &types.AttributeValueMemberS{Value: memberID},
		},
		ScanIndexForward: aws.Bool(false),
	}

	entries, err := s.queryEntries(ctx, input, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries of member %s: %w", memberID, err)
	}
	return entries, nil
}

func (s *Store) queryEntries(ctx context.Context, input *dynamodb.QueryInput, limit int32) ([]models.LedgerEntry, error) {
	items, err := s.query(ctx, input, limit)
	if err != nil {
		return nil, err
	}

	var records []entryRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
	}
	entries := make([]models.LedgerEntry, 0, len(records))
	for _, r := range records {
		e, err := r.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
