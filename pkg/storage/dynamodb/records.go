package dynamodb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/shopspring/decimal"
)

// Hours are stored as DynamoDB numbers so they keep their exact decimal value.

type memberRecord struct {
	MemberID      string                `dynamodbav:"member_id"`
	Balance       attributevalue.Number `dynamodbav:"balance"`
	Reserved      attributevalue.Number `dynamodbav:"reserved"`
	PendingCredit attributevalue.Number `dynamodbav:"pending_credit"`
	Version       int64                 `dynamodbav:"version"`
	CreatedAt     time.Time             `dynamodbav:"created_at"`
	UpdatedAt     time.Time             `dynamodbav:"updated_at"`
}

type engagementRecord struct {
	ID                   string                `dynamodbav:"id"`
	RequesterID          string                `dynamodbav:"requester_id"`
	ProviderID           string                `dynamodbav:"provider_id"`
	Hours                attributevalue.Number `dynamodbav:"hours"`
	State                string                `dynamodbav:"state"`
	PostID               string                `dynamodbav:"post_id,omitempty"`
	Message              string                `dynamodbav:"message,omitempty"`
	CancelReason         string                `dynamodbav:"cancel_reason,omitempty"`
	ConfirmedByRequester bool                  `dynamodbav:"confirmed_by_requester"`
	ConfirmedByProvider  bool                  `dynamodbav:"confirmed_by_provider"`
	Version              int64                 `dynamodbav:"version"`
	CreatedAt            time.Time             `dynamodbav:"created_at"`
	UpdatedAt            time.Time             `dynamodbav:"updated_at"`
	ReservedAt           *time.Time            `dynamodbav:"reserved_at,omitempty"`
	SettledAt            *time.Time            `dynamodbav:"settled_at,omitempty"`
	CancelledAt          *time.Time            `dynamodbav:"cancelled_at,omitempty"`
}

type entryRecord struct {
	EntryID       string                `dynamodbav:"entry_id"`
	EngagementID  string                `dynamodbav:"engagement_id,omitempty"`
	MemberID      string                `dynamodbav:"member_id"`
	Kind          string                `dynamodbav:"kind"`
	Debit         attributevalue.Number `dynamodbav:"debit"`
	Credit        attributevalue.Number `dynamodbav:"credit"`
	BalanceBefore attributevalue.Number `dynamodbav:"balance_before"`
	BalanceAfter  attributevalue.Number `dynamodbav:"balance_after"`
	MemberVersion int64                 `dynamodbav:"member_version"`
	Description   string                `dynamodbav:"description"`
	Timestamp     time.Time             `dynamodbav:"timestamp"`
	GSI1PK        string                `dynamodbav:"gsi1pk"`
}

func number(d decimal.Decimal) attributevalue.Number {
	return attributevalue.Number(d.String())
}

func parseNumber(field string, n attributevalue.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, n, err)
	}
	return d, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func toMemberRecord(m *models.Member) memberRecord {
	return memberRecord{
		MemberID:      m.MemberId,
		Balance:       number(m.Balance),
		Reserved:      number(m.Reserved),
		PendingCredit: number(m.PendingCredit),
		Version:       m.Version,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func (r memberRecord) toModel() (*models.Member, error) {
	m := &models.Member{
		MemberId:  r.MemberID,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	var err error
	if m.Balance, err = parseNumber("balance", r.Balance); err != nil {
		return nil, err
	}
	if m.Reserved, err = parseNumber("reserved", r.Reserved); err != nil {
		return nil, err
	}
	if m.PendingCredit, err = parseNumber("pending credit", r.PendingCredit); err != nil {
		return nil, err
	}
	return m, nil
}

func toEngagementRecord(e *models.Engagement) engagementRecord {
	return engagementRecord{
		ID:                   e.Id,
		RequesterID:          e.RequesterId,
		ProviderID:           e.ProviderId,
		Hours:                number(e.Hours),
		State:                string(e.State),
		PostID:               e.PostId,
		Message:              e.Message,
		CancelReason:         e.CancelReason,
		ConfirmedByRequester: e.ConfirmedByRequester,
		ConfirmedByProvider:  e.ConfirmedByProvider,
		Version:              e.Version,
		CreatedAt:            e.CreatedAt.UTC(),
		UpdatedAt:            e.UpdatedAt.UTC(),
		ReservedAt:           utc(e.ReservedAt),
		SettledAt:            utc(e.SettledAt),
		CancelledAt:          utc(e.CancelledAt),
	}
}

func (r engagementRecord) toModel() (*models.Engagement, error) {
	hours, err := parseNumber("hours", r.Hours)
	if err != nil {
		return nil, err
	}
	return &models.Engagement{
		Id:                   r.ID,
		RequesterId:          r.RequesterID,
		ProviderId:           r.ProviderID,
		Hours:                hours,
		State:                models.EngagementState(r.State),
		PostId:               r.PostID,
		Message:              r.Message,
		CancelReason:         r.CancelReason,
		ConfirmedByRequester: r.ConfirmedByRequester,
		ConfirmedByProvider:  r.ConfirmedByProvider,
		Version:              r.Version,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
		ReservedAt:           r.ReservedAt,
		SettledAt:            r.SettledAt,
		CancelledAt:          r.CancelledAt,
	}, nil
}

func toEntryRecord(e *models.LedgerEntry) entryRecord {
	return entryRecord{
		EntryID:       e.EntryID,
		EngagementID:  e.EngagementID,
		MemberID:      e.MemberID,
		Kind:          string(e.Kind),
		Debit:         number(e.Debit),
		Credit:        number(e.Credit),
		BalanceBefore: number(e.BalanceBefore),
		BalanceAfter:  number(e.BalanceAfter),
		MemberVersion: e.MemberVersion,
		Description:   e.Description,
		Timestamp:     e.Timestamp.UTC(),
		GSI1PK:        ledgerPartition,
	}
}

func (r entryRecord) toModel() (models.LedgerEntry, error) {
	e := models.LedgerEntry{
		EntryID:       r.EntryID,
		EngagementID:  r.EngagementID,
		MemberID:      r.MemberID,
		Kind:          models.EntryKind(r.Kind),
		MemberVersion: r.MemberVersion,
		Description:   r.Description,
		Timestamp:     r.Timestamp,
	}
	var err error
	if e.Debit, err = parseNumber("debit", r.Debit); err != nil {
		return e, err
	}
	if e.Credit, err = parseNumber("credit", r.Credit); err != nil {
		return e, err
	}
	if e.BalanceBefore, err = parseNumber("balance before", r.BalanceBefore); err != nil {
		return e, err
	}
	if e.BalanceAfter, err = parseNumber("balance after", r.BalanceAfter); err != nil {
		return e, err
	}
	return e, nil
}
