package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/hive-timebank/pkg/audit"
	"github.com/chris/hive-timebank/pkg/bootstrap"
	"github.com/chris/hive-timebank/pkg/config"
)

// Auditor runs an invariant audit.
type Auditor interface {
	Run(ctx context.Context) (*audit.Report, error)
}

// Handler runs the ledger audit on a schedule.
type Handler struct {
	Auditor Auditor
	Logger  *slog.Logger
}

// HandleRequest is triggered by an EventBridge Schedule. It fails when the
// audit finds violations so that the invocation error alarms.
func (h *Handler) HandleRequest(ctx context.Context) error {
	h.Logger.InfoContext(ctx, "starting ledger audit")

	report, err := h.Auditor.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to audit ledger: %w", err)
	}
	if !report.OK() {
		return fmt.Errorf("ledger audit found %d violations", len(report.Violations))
	}

	h.Logger.InfoContext(ctx, "ledger audit passed", "members", report.Members, "reserved_engagements", report.ReservedEngagements)
	return nil
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

	h := &Handler{Auditor: svc.Auditor, Logger: logger}
	lambda.Start(h.HandleRequest)
}
