// Package bootstrap wires the ledger and its dependencies from a Config. It is
// shared by the HTTP server, the lambdas and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/hive-timebank/pkg/audit"
	"github.com/chris/hive-timebank/pkg/config"
	"github.com/chris/hive-timebank/pkg/events"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/chris/hive-timebank/pkg/storage/dynamodb"
	"github.com/chris/hive-timebank/pkg/storage/memory"
	"github.com/chris/hive-timebank/pkg/timebank"
)

// Service holds the wired components.
type Service struct {
	Store     storage.Storage
	Publisher events.Publisher
	Ledger    *timebank.Ledger
	Auditor   *audit.Auditor
}

// New builds the store selected by cfg, the event publisher and the ledger.
// AWS configuration is only loaded when DynamoDB or SQS is used.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg == nil {
			c, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
			}
			awsCfg = &c
		}
		return *awsCfg, nil
	}

	var store storage.Storage
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.WarnContext(ctx, "using in-memory store, data is lost on exit")
		store = memory.New()
	case config.BackendDynamoDB:
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		store = dynamodb.New(awsdynamodb.NewFromConfig(c), cfg.MembersTable, cfg.EngagementsTable, cfg.LedgerTable)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	var publisher events.Publisher = &events.NoOpPublisher{}
	if cfg.SQSQueueURL != "" {
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(c), cfg.SQSQueueURL)
	}

	ledger := timebank.New(store, publisher, timebank.Options{
		Logger:         logger,
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	})

	return &Service{
		Store:     store,
		Publisher: publisher,
		Ledger:    ledger,
		Auditor:   audit.New(store, logger),
	}, nil
}
