package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/hive-timebank/pkg/bootstrap"
	"github.com/chris/hive-timebank/pkg/config"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/timebank"
)

// Confirmer is the part of the ledger the lambda drives.
type Confirmer interface {
	ConfirmCompletion(ctx context.Context, engagementID string, party models.Party) (*models.Engagement, error)
	GetEngagement(ctx context.Context, engagementID string) (*models.Engagement, error)
}

// Command is the body of a confirmation message.
type Command struct {
	EngagementID string       `json:"engagementId"`
	Party        models.Party `json:"party"`
}

// Handler confirms engagements from SQS messages.
type Handler struct {
	Ledger Confirmer
	Logger *slog.Logger
}

// HandleRequest processes a batch of confirmation messages. Messages that fail
// for a reason a retry could fix are reported back so SQS redelivers only
// those. Confirmations are idempotent, so redelivery is safe.
func (h *Handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		if retry := h.process(ctx, message); retry {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		}
	}
	return resp, nil
}

// process handles one message and reports whether it should be redelivered.
func (h *Handler) process(ctx context.Context, message events.SQSMessage) bool {
	logger := h.Logger.With("message_id", message.MessageId)

	var cmd Command
	if err := json.Unmarshal([]byte(message.Body), &cmd); err != nil {
		logger.ErrorContext(ctx, "dropping malformed confirmation", "error", err)
		return false
	}
	logger = logger.With("engagement_id", cmd.EngagementID, "party", cmd.Party)

	eng, err := h.Ledger.ConfirmCompletion(ctx, cmd.EngagementID, cmd.Party)
	switch kind := timebank.KindOf(err); kind {
	case "":
		logger.InfoContext(ctx, "confirmation applied", "state", eng.State)
		return false
	case timebank.KindInvalidState:
		current, getErr := h.Ledger.GetEngagement(ctx, cmd.EngagementID)
		if getErr == nil && current.State == models.SETTLED {
			logger.InfoContext(ctx, "engagement already settled")
			return false
		}
		logger.WarnContext(ctx, "dropping confirmation", "kind", kind, "error", err)
		return false
	case timebank.KindConflict, timebank.KindInternal:
		logger.ErrorContext(ctx, "failed to confirm engagement, will retry", "kind", kind, "error", err)
		return true
	default:
		logger.WarnContext(ctx, "dropping confirmation", "kind", kind, "error", err)
		return false
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := cfg.NewLogger(os.Stdout)

	svc, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise service: %v", err)
	}

	h := &Handler{Ledger: svc.Ledger, Logger: logger}
	lambda.Start(h.HandleRequest)
}
