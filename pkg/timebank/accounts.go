package timebank

import (
	"context"
	"fmt"
	"strings"

	"github.com/chris/hive-timebank/pkg/events"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenAccount creates a member account holding the starting balance.
// It fails with ErrAlreadyExists if the member already has an account.
func (l *Ledger) OpenAccount(ctx context.Context, memberID string) (*models.Member, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, fmt.Errorf("%w: member id is required", ErrInvalidParticipants)
	}

	out, err := l.execute(ctx, "open_account", func(ctx context.Context) (*outcome, error) {
		now := l.now()
		member := &models.Member{
			MemberId:      memberID,
			Balance:       models.StartingBalance,
			Reserved:      decimal.Zero,
			PendingCredit: decimal.Zero,
			Version:       1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		entry := models.LedgerEntry{
			EntryID:       uuid.New().String(),
			MemberID:      memberID,
			Kind:          models.EntryOpeningBonus,
			Credit:        models.StartingBalance,
			BalanceBefore: decimal.Zero,
			BalanceAfter:  member.Balance,
			MemberVersion: member.Version,
			Description:   "Starting bonus",
			Timestamp:     now,
		}

		err := l.store.Apply(ctx, &storage.Transition{
			Members: []*models.Member{member},
			Entries: []models.LedgerEntry{entry},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open account: %w", err)
		}

		l.logger.InfoContext(ctx, "account opened", "member_id", memberID, "balance", member.Balance.String())
		return &outcome{
			member: member,
			events: []events.Event{{
				Type:       events.MemberOpened,
				MemberID:   memberID,
				Hours:      member.Balance,
				OccurredAt: now,
			}},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.member, nil
}

// GetMember retrieves a member's account.
func (l *Ledger) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	return l.store.GetMember(ctx, memberID)
}

// ListMembers retrieves all member accounts.
func (l *Ledger) ListMembers(ctx context.Context) ([]models.Member, error) {
	members, err := l.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ListLedgerEntries retrieves the most recent ledger entries.
func (l *Ledger) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	entries, err := l.store.ListLedgerEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

// ListMemberLedgerEntries retrieves the most recent ledger entries of a member.
func (l *Ledger) ListMemberLedgerEntries(ctx context.Context, memberID string, limit int32) ([]models.LedgerEntry, error) {
	if _, err := l.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	entries, err := l.store.ListMemberLedgerEntries(ctx, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries of member %s: %w", memberID, err)
	}
	return entries, nil
}
