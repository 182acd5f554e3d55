package handlers

import (
	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/handlers/audits"
	"github.com/chris/hive-timebank/pkg/handlers/engagements"
	"github.com/chris/hive-timebank/pkg/handlers/ledger"
	"github.com/chris/hive-timebank/pkg/handlers/members"
	"github.com/chris/hive-timebank/pkg/handlers/respond"
	"github.com/chris/hive-timebank/pkg/timebank"
)

// ApiHandler implements the generated server interface by composing the
// handlers of each resource.
type ApiHandler struct {
	*members.MembersHandler
	*engagements.EngagementsHandler
	*ledger.LedgerHandler
	*audits.AuditHandler
}

// NewApiHandler creates an ApiHandler serving the given ledger.
func NewApiHandler(l *timebank.Ledger, auditor audits.Auditor) *ApiHandler {
	return &ApiHandler{
		MembersHandler:     members.NewMembersHandler(l),
		EngagementsHandler: engagements.NewEngagementsHandler(l),
		LedgerHandler:      ledger.NewLedgerHandler(l),
		AuditHandler:       audits.NewAuditHandler(auditor),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// ParamErrorHandler reports parameters that could not be bound as invalid requests.
var ParamErrorHandler = respond.ParamError
