package mapping

import (
	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/audit"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/timebank"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ToApiMember converts a domain Member model to an API Member model.
func ToApiMember(m *models.Member) *api.Member {
	return &api.Member{
		MemberId:           m.MemberId,
		BalanceHours:       m.Balance.InexactFloat64(),
		ReservedHours:      m.Reserved.InexactFloat64(),
		PendingCreditHours: m.PendingCredit.InexactFloat64(),
		Version:            m.Version,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ToApiEngagement converts a domain Engagement model to an API Engagement model.
// Engagement IDs are generated by the engine as UUIDs; any other ID maps to the nil UUID.
func ToApiEngagement(e *models.Engagement) *api.Engagement {
	id, _ := uuid.Parse(e.Id)
	return &api.Engagement{
		EngagementId:         openapi_types.UUID(id),
		RequesterId:          e.RequesterId,
		ProviderId:           e.ProviderId,
		Hours:                e.Hours.InexactFloat64(),
		State:                api.EngagementState(e.State),
		PostId:               optional(e.PostId),
		Message:              optional(e.Message),
		CancelReason:         optional(e.CancelReason),
		ConfirmedByRequester: e.ConfirmedByRequester,
		ConfirmedByProvider:  e.ConfirmedByProvider,
		Version:              e.Version,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
		ReservedAt:           e.ReservedAt,
		SettledAt:            e.SettledAt,
		CancelledAt:          e.CancelledAt,
	}
}

// ToDomainProposal converts an API NewEngagement request to an engine proposal.
func ToDomainProposal(n *api.NewEngagement) timebank.Proposal {
	p := timebank.Proposal{
		RequesterID: n.RequesterId,
		ProviderID:  n.ProviderId,
		Hours:       decimal.NewFromFloat(n.Hours),
	}
	if n.PostId != nil {
		p.PostID = *n.PostId
	}
	if n.Message != nil {
		p.Message = *n.Message
	}
	return p
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryId:       entry.EntryID,
		EngagementId:  optional(entry.EngagementID),
		MemberId:      entry.MemberID,
		Kind:          api.LedgerEntryKind(entry.Kind),
		Debit:         entry.Debit.InexactFloat64(),
		Credit:        entry.Credit.InexactFloat64(),
		BalanceBefore: entry.BalanceBefore.InexactFloat64(),
		BalanceAfter:  entry.BalanceAfter.InexactFloat64(),
		MemberVersion: entry.MemberVersion,
		Description:   entry.Description,
		Timestamp:     entry.Timestamp,
	}
}

// ToApiAuditReport converts an audit report to its API model.
func ToApiAuditReport(r *audit.Report) *api.AuditReport {
	violations := make([]api.AuditViolation, len(r.Violations))
	for i, v := range r.Violations {
		violations[i] = api.AuditViolation{
			Rule:         string(v.Rule),
			MemberId:     optional(v.MemberID),
			EngagementId: optional(v.EngagementID),
			Detail:       v.Detail,
		}
	}
	return &api.AuditReport{
		Ok:                  r.OK(),
		Members:             r.Members,
		ReservedEngagements: r.ReservedEngagements,
		TotalBalance:        r.TotalBalance.InexactFloat64(),
		TotalReserved:       r.TotalReserved.InexactFloat64(),
		TotalPendingCredit:  r.TotalPendingCredit.InexactFloat64(),
		Violations:          violations,
		CheckedAt:           r.CheckedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
