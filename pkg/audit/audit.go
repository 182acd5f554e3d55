// Package audit recomputes the ledger invariants from storage.
//
// The audit reads members and reserved engagements separately, so it only
// reports a consistent picture while no operations are in flight. Scheduled
// runs should treat a single failing report as a signal to re-run, not as proof
// of corruption.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/hive-timebank/pkg/metrics"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/shopspring/decimal"
)

// Rule names an invariant checked by the audit.
type Rule string

const (
	RuleBalanceBand      Rule = "balance_band"
	RuleNegativeHold     Rule = "negative_hold"
	RuleCeiling          Rule = "ceiling"
	RuleReservedMismatch Rule = "reserved_mismatch"
	RulePendingMismatch  Rule = "pending_credit_mismatch"
	RuleCustody          Rule = "custody"
	RuleUnknownMember    Rule = "unknown_member"
)

// Violation describes one broken invariant.
type Violation struct {
	Rule         Rule   `json:"rule"`
	MemberID     string `json:"member_id,omitempty"`
	EngagementID string `json:"engagement_id,omitempty"`
	Detail       string `json:"detail"`
}

// Report is the result of one audit run.
type Report struct {
	Members             int             `json:"members"`
	ReservedEngagements int             `json:"reserved_engagements"`
	TotalBalance        decimal.Decimal `json:"total_balance"`
	TotalReserved       decimal.Decimal `json:"total_reserved"`
	TotalPendingCredit  decimal.Decimal `json:"total_pending_credit"`
	Violations          []Violation     `json:"violations"`
	CheckedAt           time.Time       `json:"checked_at"`
}

// OK reports whether the audit found no violations.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Source is the read access the audit needs.
type Source interface {
	storage.MemberReader
	ListEngagementsByState(ctx context.Context, state models.EngagementState) ([]models.Engagement, error)
}

// Auditor checks the ledger invariants.
type Auditor struct {
	store  Source
	logger *slog.Logger
}

// New creates an Auditor.
func New(store Source, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{store: store, logger: logger}
}

// Run reads every member and reserved engagement and reports the violations found.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	members, err := a.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	reserved, err := a.store.ListEngagementsByState(ctx, models.RESERVED)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserved engagements: %w", err)
	}

	report := Check(members, reserved)
	report.CheckedAt = time.Now()

	metrics.AuditViolations.Set(float64(len(report.Violations)))
	for _, v := range report.Violations {
		a.logger.WarnContext(ctx, "ledger invariant violated", "rule", v.Rule, "member_id", v.MemberID, "engagement_id", v.EngagementID, "detail", v.Detail)
	}
	a.logger.InfoContext(ctx, "audit finished",
		"members", report.Members,
		"reserved_engagements", report.ReservedEngagements,
		"total_reserved", report.TotalReserved.String(),
		"total_pending_credit", report.TotalPendingCredit.String(),
		"violations", len(report.Violations),
	)
	return report, nil
}

// Check evaluates the invariants over a set of members and the engagements
// currently in the Reserved state.
func Check(members []models.Member, reserved []models.Engagement) *Report {
	report := &Report{
		Members:             len(members),
		ReservedEngagements: len(reserved),
		TotalBalance:        decimal.Zero,
		TotalReserved:       decimal.Zero,
		TotalPendingCredit:  decimal.Zero,
		Violations:          []Violation{},
	}

	held := make(map[string]decimal.Decimal, len(members))
	owed := make(map[string]decimal.Decimal, len(members))
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.MemberId] = true
	}

	for _, e := range reserved {
		for _, id := range []string{e.RequesterId, e.ProviderId} {
			if !known[id] {
				report.add(RuleUnknownMember, id, e.Id, "reserved engagement references a member without an account")
			}
		}
		held[e.RequesterId] = held[e.RequesterId].Add(e.Hours)
		owed[e.ProviderId] = owed[e.ProviderId].Add(e.Hours)
	}

	for _, m := range members {
		report.TotalBalance = report.TotalBalance.Add(m.Balance)
		report.TotalReserved = report.TotalReserved.Add(m.Reserved)
		report.TotalPendingCredit = report.TotalPendingCredit.Add(m.PendingCredit)

		if m.Balance.IsNegative() || m.Balance.GreaterThan(models.MaxBalance) {
			report.add(RuleBalanceBand, m.MemberId, "", fmt.Sprintf("balance %s outside [0, %s]", m.Balance, models.MaxBalance))
		}
		if m.Reserved.IsNegative() || m.PendingCredit.IsNegative() {
			report.add(RuleNegativeHold, m.MemberId, "", fmt.Sprintf("reserved %s, pending credit %s", m.Reserved, m.PendingCredit))
		}
		if c := m.Ceiling(); c.GreaterThan(models.MaxBalance) {
			report.add(RuleCeiling, m.MemberId, "", fmt.Sprintf("ceiling %s above %s", c, models.MaxBalance))
		}
		if want := held[m.MemberId]; !m.Reserved.Equal(want) {
			report.add(RuleReservedMismatch, m.MemberId, "", fmt.Sprintf("reserved %s, reserved engagements hold %s", m.Reserved, want))
		}
		if want := owed[m.MemberId]; !m.PendingCredit.Equal(want) {
			report.add(RulePendingMismatch, m.MemberId, "", fmt.Sprintf("pending credit %s, reserved engagements owe %s", m.PendingCredit, want))
		}
	}

	if !report.TotalReserved.Equal(report.TotalPendingCredit) {
		report.add(RuleCustody, "", "", fmt.Sprintf("total reserved %s != total pending credit %s", report.TotalReserved, report.TotalPendingCredit))
	}
	return report
}

func (r *Report) add(rule Rule, memberID, engagementID, detail string) {
	r.Violations = append(r.Violations, Violation{Rule: rule, MemberID: memberID, EngagementID: engagementID, Detail: detail})
}
