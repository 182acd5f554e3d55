package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// StartingBalance is credited to every member when their account is opened.
	StartingBalance = decimal.NewFromInt(3)

	// MaxBalance is the ceiling no member balance may exceed.
	MaxBalance = decimal.NewFromInt(10)

	// HourGranularity is the smallest unit of time that can change hands.
	HourGranularity = decimal.RequireFromString("0.5")
)

// EngagementState defines the possible states of an engagement.
type EngagementState string

const (
	PROPOSED  EngagementState = "Proposed"
	RESERVED  EngagementState = "Reserved"
	SETTLED   EngagementState = "Settled"
	CANCELLED EngagementState = "Cancelled"
	REJECTED  EngagementState = "Rejected"
)

// Terminal reports whether no transition may leave the state.
func (s EngagementState) Terminal() bool {
	return s == SETTLED || s == CANCELLED || s == REJECTED
}

// Party identifies one side of an engagement.
type Party string

const (
	PartyRequester Party = "requester"
	PartyProvider  Party = "provider"
)

// Valid reports whether p is one of the known parties.
func (p Party) Valid() bool {
	return p == PartyRequester || p == PartyProvider
}

// Member represents a TimeBank account.
//
// Balance is spendable. Reserved holds hours debited for the member's own
// outgoing reservations, awaiting settlement or refund. PendingCredit holds
// hours owed to the member as a provider, credited on settlement.
type Member struct {
	MemberId      string          `json:"member_id"`
	Balance       decimal.Decimal `json:"balance"`
	Reserved      decimal.Decimal `json:"reserved"`
	PendingCredit decimal.Decimal `json:"pending_credit"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Ceiling is the balance the member would hold if every outgoing reservation
// were refunded and every incoming credit settled.
func (m *Member) Ceiling() decimal.Decimal {
	return m.Balance.Add(m.Reserved).Add(m.PendingCredit)
}

// Engagement represents a proposed, reserved or closed service exchange.
type Engagement struct {
	Id                   string          `json:"id"`
	RequesterId          string          `json:"requester_id"`
	ProviderId           string          `json:"provider_id"`
	Hours                decimal.Decimal `json:"hours"`
	State                EngagementState `json:"state"`
	PostId               string          `json:"post_id,omitempty"`
	Message              string          `json:"message,omitempty"`
	CancelReason         string          `json:"cancel_reason,omitempty"`
	ConfirmedByRequester bool            `json:"confirmed_by_requester"`
	ConfirmedByProvider  bool            `json:"confirmed_by_provider"`
	Version              int64           `json:"version"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	ReservedAt           *time.Time      `json:"reserved_at,omitempty"`
	SettledAt            *time.Time      `json:"settled_at,omitempty"`
	CancelledAt          *time.Time      `json:"cancelled_at,omitempty"`
}

// Confirmed reports whether the given party has confirmed completion.
func (e *Engagement) Confirmed(p Party) bool {
	if p == PartyRequester {
		return e.ConfirmedByRequester
	}
	return e.ConfirmedByProvider
}

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryOpeningBonus EntryKind = "opening_bonus"
	EntryReservation  EntryKind = "reservation"
	EntrySettlement   EntryKind = "settlement"
	EntryRefund       EntryKind = "refund"
)

// LedgerEntry represents a single movement of a member's spendable balance.
type LedgerEntry struct {
	EntryID       string          `json:"entry_id"`
	EngagementID  string          `json:"engagement_id,omitempty"`
	MemberID      string          `json:"member_id"`
	Kind          EntryKind       `json:"kind"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	MemberVersion int64           `json:"member_version"`
	Description   string          `json:"description"`
	Timestamp     time.Time       `json:"timestamp"`
}
