package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Type names a ledger lifecycle event.
type Type string

const (
	MemberOpened        Type = "member.opened"
	EngagementProposed  Type = "engagement.proposed"
	EngagementReserved  Type = "engagement.reserved"
	EngagementConfirmed Type = "engagement.confirmed"
	EngagementSettled   Type = "engagement.settled"
	EngagementCancelled Type = "engagement.cancelled"
	EngagementRejected  Type = "engagement.rejected"
)

// Event is published after a ledger transition has been committed.
type Event struct {
	Type         Type            `json:"type"`
	EngagementID string          `json:"engagement_id,omitempty"`
	RequesterID  string          `json:"requester_id,omitempty"`
	ProviderID   string          `json:"provider_id,omitempty"`
	MemberID     string          `json:"member_id,omitempty"`
	Hours        decimal.Decimal `json:"hours"`
	State        string          `json:"state,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// Publisher defines the interface for a component that delivers ledger events
// to downstream consumers.
type Publisher interface {
	// Publish delivers an event. Implementations must not block on slow consumers.
	Publish(ctx context.Context, event Event) error
}

// NoOpPublisher is a publisher that does nothing.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
