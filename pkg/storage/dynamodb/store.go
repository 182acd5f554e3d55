package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/hive-timebank/pkg/storage"
)

const (
	requesterIndex       = "requester_id-index"
	providerIndex        = "provider_id-index"
	engagementStateIndex = "state-created_at-index"
	ledgerIndex          = "gsi1pk-timestamp-index"
	memberLedgerIndex    = "member_id-timestamp-index"

	// ledgerPartition is the constant GSI partition key shared by every ledger
	// entry, so the whole journal can be read in timestamp order.
	ledgerPartition = "LEDGER_ENTRIES"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	MembersTableName     string
	EngagementsTableName string
	LedgerTableName      string
}

// New creates a new Store.
func New(client DynamoDBAPI, membersTable, engagementsTable, ledgerTable string) *Store {
	return &Store{
		Client:               client,
		MembersTableName:     membersTable,
		EngagementsTableName: engagementsTable,
		LedgerTableName:      ledgerTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
