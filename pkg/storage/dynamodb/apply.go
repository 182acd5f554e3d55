package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/hive-timebank/pkg/storage"
)

// write is one conditional put of a transition.
type write struct {
	label  string
	create bool
	put    *types.Put
}

// Apply writes a transition. A transition with a single write uses PutItem;
// anything larger is committed with TransactWriteItems so that either all
// version conditions hold and every item is written, or nothing is.
func (s *Store) Apply(ctx context.Context, t *storage.Transition) error {
	writes, err := s.buildWrites(t)
	if err != nil {
		return err
	}
	switch len(writes) {
	case 0:
		return nil
	case 1:
		return s.putOne(ctx, writes[0])
	}

	items := make([]types.TransactWriteItem, len(writes))
	for i, w := range writes {
		items[i] = types.TransactWriteItem{Put: w.put}
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return cancellationError(writes, tce)
		}
		return fmt.Errorf("failed to execute transaction: %w", err)
	}
	return nil
}

func (s *Store) putOne(ctx context.Context, w write) error {
	input := &dynamodb.PutItemInput{
		TableName:                 w.put.TableName,
		Item:                      w.put.Item,
		ConditionExpression:       w.put.ConditionExpression,
		ExpressionAttributeValues: w.put.ExpressionAttributeValues,
	}
	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("%s: %w", w.label, conditionError(w))
		}
		return fmt.Errorf("failed to put %s: %w", w.label, err)
	}
	return nil
}

func (s *Store) buildWrites(t *storage.Transition) ([]write, error) {
	var writes []write

	for _, m := range t.Members {
		item, err := attributevalue.MarshalMap(toMemberRecord(m))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal member: %w", err)
		}
		writes = append(writes, versionedPut("member "+m.MemberId, s.MembersTableName, "member_id", item, m.Version))
	}

	if e := t.Engagement; e != nil {
		item, err := attributevalue.MarshalMap(toEngagementRecord(e))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal engagement: %w", err)
		}
		writes = append(writes, versionedPut("engagement "+e.Id, s.EngagementsTableName, "id", item, e.Version))
	}

	for i := range t.Entries {
		item, err := attributevalue.MarshalMap(toEntryRecord(&t.Entries[i]))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal ledger entry: %w", err)
		}
		writes = append(writes, write{
			label:  "ledger entry " + t.Entries[i].EntryID,
			create: true,
			put: &types.Put{
				TableName:           aws.String(s.LedgerTableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		})
	}
	return writes, nil
}

// versionedPut builds a put that creates the item at version 1, or replaces it
// only while it is still at the previous version.
func versionedPut(label, table, key string, item map[string]types.AttributeValue, version int64) write {
	if version == 1 {
		return write{
			label:  label,
			create: true,
			put: &types.Put{
				TableName:           aws.String(table),
				Item:                item,
				ConditionExpression: aws.String(fmt.Sprintf("attribute_not_exists(%s)", key)),
			},
		}
	}
	return write{
		label: label,
		put: &types.Put{
			TableName:           aws.String(table),
			Item:                item,
			ConditionExpression: aws.String("version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(version-1, 10)},
			},
		},
	}
}

func conditionError(w write) error {
	if w.create {
		return storage.ErrAlreadyExists
	}
	return storage.ErrConflict
}

// cancellationError maps the per-item cancellation reasons of a cancelled
// transaction back to the write that caused them.
func cancellationError(writes []write, tce *types.TransactionCanceledException) error {
	for i, reason := range tce.CancellationReasons {
		if i >= len(writes) || reason.Code == nil {
			continue
		}
		switch *reason.Code {
		case "ConditionalCheckFailed":
			return fmt.Errorf("%s: %w", writes[i].label, conditionError(writes[i]))
		case "TransactionConflict":
			return fmt.Errorf("%s: %w", writes[i].label, storage.ErrConflict)
		}
	}
	return fmt.Errorf("transaction cancelled: %w", storage.ErrConflict)
}
