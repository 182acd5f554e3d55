package timebank

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chris/hive-timebank/pkg/events"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Proposal describes a service exchange a requester asks a provider for.
type Proposal struct {
	RequesterID string
	ProviderID  string
	Hours       decimal.Decimal
	// PostID optionally links the offer or need post the proposal came from.
	PostID  string
	Message string
}

// ProposeEngagement records a proposed engagement. It has no balance effect.
func (l *Ledger) ProposeEngagement(ctx context.Context, p Proposal) (*models.Engagement, error) {
	requesterID := strings.TrimSpace(p.RequesterID)
	providerID := strings.TrimSpace(p.ProviderID)
	switch {
	case requesterID == "" || providerID == "":
		return nil, fmt.Errorf("%w: requester and provider are required", ErrInvalidParticipants)
	case requesterID == providerID:
		return nil, fmt.Errorf("%w: member %s cannot request a service from themselves", ErrInvalidParticipants, requesterID)
	}
	if err := validateHours(p.Hours); err != nil {
		return nil, err
	}

	out, err := l.execute(ctx, "propose", func(ctx context.Context) (*outcome, error) {
		if _, err := l.store.GetMember(ctx, requesterID); err != nil {
			return nil, fmt.Errorf("failed to get requester: %w", err)
		}
		if _, err := l.store.GetMember(ctx, providerID); err != nil {
			return nil, fmt.Errorf("failed to get provider: %w", err)
		}

		now := l.now()
		eng := &models.Engagement{
			Id:          uuid.New().String(),
			RequesterId: requesterID,
			ProviderId:  providerID,
			Hours:       p.Hours,
			State:       models.PROPOSED,
			PostId:      p.PostID,
			Message:     p.Message,
			Version:     1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := l.store.Apply(ctx, &storage.Transition{Engagement: eng}); err != nil {
			return nil, fmt.Errorf("failed to create engagement: %w", err)
		}

		l.logger.InfoContext(ctx, "engagement proposed", "engagement_id", eng.Id, "requester_id", requesterID, "provider_id", providerID, "hours", eng.Hours.String())
		return &outcome{engagement: eng, events: []events.Event{engagementEvent(events.EngagementProposed, eng)}}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.engagement, nil
}

// Reserve moves a proposed engagement to Reserved. In the same transaction it
// debits the hours from the requester and records them as pending credit of the
// provider.
//
// It fails with ErrInsufficientBalance if the requester's balance is below the
// hours, and with ErrProviderAtCapacity if settling could take the provider's
// balance above models.MaxBalance.
func (l *Ledger) Reserve(ctx context.Context, engagementID string) (*models.Engagement, error) {
	out, err := l.execute(ctx, "reserve", func(ctx context.Context) (*outcome, error) {
		eng, err := l.store.GetEngagement(ctx, engagementID)
		if err != nil {
			return nil, fmt.Errorf("failed to get engagement: %w", err)
		}
		if eng.State != models.PROPOSED {
			return nil, fmt.Errorf("%w: engagement %s is %s, only %s engagements can be reserved", ErrInvalidState, eng.Id, eng.State, models.PROPOSED)
		}
		requester, provider, err := l.participants(ctx, eng)
		if err != nil {
			return nil, err
		}

		if requester.Balance.LessThan(eng.Hours) {
			return nil, fmt.Errorf("%w: requester %s has %s hours, engagement needs %s", ErrInsufficientBalance, requester.MemberId, requester.Balance, eng.Hours)
		}
		if ceiling := provider.Ceiling().Add(eng.Hours); ceiling.GreaterThan(models.MaxBalance) {
			return nil, fmt.Errorf("%w: provider %s would reach %s hours, maximum is %s", ErrProviderAtCapacity, provider.MemberId, ceiling, models.MaxBalance)
		}

		now := l.now()
		before := requester.Balance
		requester.Balance = requester.Balance.Sub(eng.Hours)
		requester.Reserved = requester.Reserved.Add(eng.Hours)
		touch(requester, now)
		provider.PendingCredit = provider.PendingCredit.Add(eng.Hours)
		touch(provider, now)

		eng.State = models.RESERVED
		eng.ReservedAt = &now
		eng.Version++
		eng.UpdatedAt = now

		entry := models.LedgerEntry{
			EntryID:       uuid.New().String(),
			EngagementID:  eng.Id,
			MemberID:      requester.MemberId,
			Kind:          models.EntryReservation,
			Debit:         eng.Hours,
			BalanceBefore: before,
			BalanceAfter:  requester.Balance,
			MemberVersion: requester.Version,
			Description:   fmt.Sprintf("Reservation for engagement %s", eng.Id),
			Timestamp:     now,
		}

		err = l.store.Apply(ctx, &storage.Transition{
			Members:    []*models.Member{requester, provider},
			Engagement: eng,
			Entries:    []models.LedgerEntry{entry},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to reserve engagement: %w", err)
		}

		l.logger.InfoContext(ctx, "engagement reserved", "engagement_id", eng.Id, "requester_id", requester.MemberId, "provider_id", provider.MemberId, "hours", eng.Hours.String())
		return &outcome{engagement: eng, events: []events.Event{engagementEvent(events.EngagementReserved, eng)}}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.engagement, nil
}

// ConfirmCompletion records that one party considers the engagement complete.
// Confirming twice by the same party is a no-op. The confirmation that
// completes the pair settles the engagement in the same transaction, crediting
// the provider.
func (l *Ledger) ConfirmCompletion(ctx context.Context, engagementID string, party models.Party) (*models.Engagement, error) {
	if !party.Valid() {
		return nil, fmt.Errorf("%w: unknown party %q", ErrInvalidParticipants, party)
	}

	out, err := l.execute(ctx, "confirm", func(ctx context.Context) (*outcome, error) {
		eng, err := l.store.GetEngagement(ctx, engagementID)
		if err != nil {
			return nil, fmt.Errorf("failed to get engagement: %w", err)
		}
		if eng.State != models.RESERVED {
			return nil, fmt.Errorf("%w: engagement %s is %s, only %s engagements can be confirmed", ErrInvalidState, eng.Id, eng.State, models.RESERVED)
		}
		if eng.Confirmed(party) {
			return &outcome{engagement: eng}, nil
		}

		now := l.now()
		if party == models.PartyRequester {
			eng.ConfirmedByRequester = true
		} else {
			eng.ConfirmedByProvider = true
		}
		eng.Version++
		eng.UpdatedAt = now

		if !eng.ConfirmedByRequester || !eng.ConfirmedByProvider {
			if err := l.store.Apply(ctx, &storage.Transition{Engagement: eng}); err != nil {
				return nil, fmt.Errorf("failed to record confirmation: %w", err)
			}
			l.logger.InfoContext(ctx, "engagement confirmed", "engagement_id", eng.Id, "party", party)
			return &outcome{engagement: eng, events: []events.Event{engagementEvent(events.EngagementConfirmed, eng)}}, nil
		}

		requester, provider, err := l.participants(ctx, eng)
		if err != nil {
			return nil, err
		}

		before := provider.Balance
		requester.Reserved = requester.Reserved.Sub(eng.Hours)
		touch(requester, now)
		provider.PendingCredit = provider.PendingCredit.Sub(eng.Hours)
		provider.Balance = provider.Balance.Add(eng.Hours)
		touch(provider, now)

		eng.State = models.SETTLED
		eng.SettledAt = &now

		entry := models.LedgerEntry{
			EntryID:       uuid.New().String(),
			EngagementID:  eng.Id,
			MemberID:      provider.MemberId,
			Kind:          models.EntrySettlement,
			Credit:        eng.Hours,
			BalanceBefore: before,
			BalanceAfter:  provider.Balance,
			MemberVersion: provider.Version,
			Description:   fmt.Sprintf("Settlement for engagement %s", eng.Id),
			Timestamp:     now,
		}

		err = l.store.Apply(ctx, &storage.Transition{
			Members:    []*models.Member{requester, provider},
			Engagement: eng,
			Entries:    []models.LedgerEntry{entry},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to settle engagement: %w", err)
		}

		l.logger.InfoContext(ctx, "engagement settled", "engagement_id", eng.Id, "provider_id", provider.MemberId, "hours", eng.Hours.String())
		return &outcome{engagement: eng, events: []events.Event{
			engagementEvent(events.EngagementConfirmed, eng),
			engagementEvent(events.EngagementSettled, eng),
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.engagement, nil
}

// Cancel closes an engagement before settlement. A proposed engagement becomes
// Rejected with no balance effect; a reserved one becomes Cancelled and the
// requester is refunded in full.
func (l *Ledger) Cancel(ctx context.Context, engagementID string, reason string) (*models.Engagement, error) {
	out, err := l.execute(ctx, "cancel", func(ctx context.Context) (*outcome, error) {
		eng, err := l.store.GetEngagement(ctx, engagementID)
		if err != nil {
			return nil, fmt.Errorf("failed to get engagement: %w", err)
		}

		if eng.State.Terminal() {
			return nil, fmt.Errorf("%w: engagement %s is already %s", ErrInvalidState, eng.Id, eng.State)
		}

		now := l.now()
		switch eng.State {
		case models.PROPOSED:
			closeEngagement(eng, models.REJECTED, reason, now)
			if err := l.store.Apply(ctx, &storage.Transition{Engagement: eng}); err != nil {
				return nil, fmt.Errorf("failed to reject engagement: %w", err)
			}
			l.logger.InfoContext(ctx, "engagement rejected", "engagement_id", eng.Id, "reason", reason)
			return &outcome{engagement: eng, events: []events.Event{engagementEvent(events.EngagementRejected, eng)}}, nil

		case models.RESERVED:
			requester, provider, err := l.participants(ctx, eng)
			if err != nil {
				return nil, err
			}

			before := requester.Balance
			requester.Balance = requester.Balance.Add(eng.Hours)
			requester.Reserved = requester.Reserved.Sub(eng.Hours)
			touch(requester, now)
			provider.PendingCredit = provider.PendingCredit.Sub(eng.Hours)
			touch(provider, now)
			closeEngagement(eng, models.CANCELLED, reason, now)

			entry := models.LedgerEntry{
				EntryID:       uuid.New().String(),
				EngagementID:  eng.Id,
				MemberID:      requester.MemberId,
				Kind:          models.EntryRefund,
				Credit:        eng.Hours,
				BalanceBefore: before,
				BalanceAfter:  requester.Balance,
				MemberVersion: requester.Version,
				Description:   fmt.Sprintf("Refund for cancelled engagement %s", eng.Id),
				Timestamp:     now,
			}

			err = l.store.Apply(ctx, &storage.Transition{
				Members:    []*models.Member{requester, provider},
				Engagement: eng,
				Entries:    []models.LedgerEntry{entry},
			})
			if err != nil {
				return nil, fmt.Errorf("failed to cancel engagement: %w", err)
			}
			l.logger.InfoContext(ctx, "engagement cancelled", "engagement_id", eng.Id, "refunded_id", requester.MemberId, "hours", eng.Hours.String(), "reason", reason)
			return &outcome{engagement: eng, events: []events.Event{engagementEvent(events.EngagementCancelled, eng)}}, nil

		default:
			return nil, fmt.Errorf("%w: engagement %s has unknown state %q", ErrInvalidState, eng.Id, eng.State)
		}
	})
	if err != nil {
		return nil, err
	}
	return out.engagement, nil
}

// GetEngagement retrieves an engagement.
func (l *Ledger) GetEngagement(ctx context.Context, engagementID string) (*models.Engagement, error) {
	return l.store.GetEngagement(ctx, engagementID)
}

// ListEngagements retrieves the engagements of a member, newest first.
func (l *Ledger) ListEngagements(ctx context.Context, memberID string) ([]models.Engagement, error) {
	if _, err := l.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	engagements, err := l.store.ListEngagementsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements of member %s: %w", memberID, err)
	}
	return engagements, nil
}

func (l *Ledger) participants(ctx context.Context, eng *models.Engagement) (*models.Member, *models.Member, error) {
	requester, err := l.store.GetMember(ctx, eng.RequesterId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get requester: %w", err)
	}
	provider, err := l.store.GetMember(ctx, eng.ProviderId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return requester, provider, nil
}

func validateHours(h decimal.Decimal) error {
	switch {
	case !h.IsPositive():
		return fmt.Errorf("%w: hours must be positive, got %s", ErrInvalidDuration, h)
	case !h.Mod(models.HourGranularity).IsZero():
		return fmt.Errorf("%w: hours must be a multiple of %s, got %s", ErrInvalidDuration, models.HourGranularity, h)
	case h.GreaterThan(models.MaxBalance):
		return fmt.Errorf("%w: hours cannot exceed %s, got %s", ErrInvalidDuration, models.MaxBalance, h)
	}
	return nil
}

func touch(m *models.Member, now time.Time) {
	m.Version++
	m.UpdatedAt = now
}

func closeEngagement(eng *models.Engagement, state models.EngagementState, reason string, now time.Time) {
	eng.State = state
	eng.CancelReason = reason
	eng.CancelledAt = &now
	eng.Version++
	eng.UpdatedAt = now
}
