package memory

import (
	"context"
	"testing"
	"time"

	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Apply(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Create And Update", func(t *testing.T) {
		s := New()
		m := &models.Member{MemberId: "alice", Balance: decimal.NewFromInt(3), Version: 1, CreatedAt: now}
		require.NoError(t, s.Apply(ctx, &storage.Transition{Members: []*models.Member{m}}))

		got, err := s.GetMember(ctx, "alice")
		require.NoError(t, err)
		got.Balance = decimal.NewFromInt(2)
		got.Version++
		require.NoError(t, s.Apply(ctx, &storage.Transition{Members: []*models.Member{got}}))

		stored, err := s.GetMember(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2).Equal(stored.Balance))
		assert.Equal(t, int64(2), stored.Version)
	})

	t.Run("Create Existing", func(t *testing.T) {
		s := New()
		m := &models.Member{MemberId: "alice", Version: 1}
		require.NoError(t, s.Apply(ctx, &storage.Transition{Members: []*models.Member{m}}))

		err := s.Apply(ctx, &storage.Transition{Members: []*models.Member{{MemberId: "alice", Version: 1}}})

		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("Stale Version Writes Nothing", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Apply(ctx, &storage.Transition{
			Members:    []*models.Member{{MemberId: "alice", Balance: decimal.NewFromInt(3), Version: 1}},
			Engagement: &models.Engagement{Id: "e1", State: models.PROPOSED, Version: 1},
		}))

		err := s.Apply(ctx, &storage.Transition{
			Members:    []*models.Member{{MemberId: "alice", Balance: decimal.NewFromInt(1), Version: 2}},
			Engagement: &models.Engagement{Id: "e1", State: models.RESERVED, Version: 3},
			Entries:    []models.LedgerEntry{{EntryID: "x", MemberID: "alice"}},
		})

		assert.ErrorIs(t, err, storage.ErrConflict)
		m, _ := s.GetMember(ctx, "alice")
		assert.True(t, decimal.NewFromInt(3).Equal(m.Balance))
		e, _ := s.GetEngagement(ctx, "e1")
		assert.Equal(t, models.PROPOSED, e.State)
		entries, _ := s.ListLedgerEntries(ctx, 0)
		assert.Empty(t, entries)
	})

	t.Run("Update Missing", func(t *testing.T) {
		s := New()

		err := s.Apply(ctx, &storage.Transition{Members: []*models.Member{{MemberId: "ghost", Version: 2}}})

		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		s := New()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := s.Apply(cctx, &storage.Transition{Members: []*models.Member{{MemberId: "alice", Version: 1}}})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_Reads(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s := New()
	require.NoError(t, s.Apply(ctx, &storage.Transition{
		Members: []*models.Member{{MemberId: "bob", Version: 1}, {MemberId: "alice", Version: 1}, {MemberId: "carol", Version: 1}},
	}))
	for i, e := range []models.Engagement{
		{Id: "e1", RequesterId: "alice", ProviderId: "bob", State: models.RESERVED, CreatedAt: base},
		{Id: "e2", RequesterId: "bob", ProviderId: "carol", State: models.PROPOSED, CreatedAt: base.Add(time.Hour)},
		{Id: "e3", RequesterId: "carol", ProviderId: "alice", State: models.RESERVED, CreatedAt: base.Add(2 * time.Hour)},
	} {
		e.Version = 1
		require.NoError(t, s.Apply(ctx, &storage.Transition{
			Engagement: &e,
			Entries:    []models.LedgerEntry{{EntryID: e.Id, MemberID: e.RequesterId, Timestamp: base.Add(time.Duration(i) * time.Hour)}},
		}))
	}

	t.Run("Members Ordered", func(t *testing.T) {
		members, err := s.ListMembers(ctx)
		require.NoError(t, err)
		require.Len(t, members, 3)
		assert.Equal(t, "alice", members[0].MemberId)
		assert.Equal(t, "carol", members[2].MemberId)
	})

	t.Run("Member Not Found", func(t *testing.T) {
		_, err := s.GetMember(ctx, "dave")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.GetEngagement(ctx, "e9")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Engagements By Member", func(t *testing.T) {
		engagements, err := s.ListEngagementsByMember(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, engagements, 2)
		assert.Equal(t, "e3", engagements[0].Id)
		assert.Equal(t, "e1", engagements[1].Id)
	})

	t.Run("Engagements By State", func(t *testing.T) {
		engagements, err := s.ListEngagementsByState(ctx, models.RESERVED)
		require.NoError(t, err)
		require.Len(t, engagements, 2)
		assert.Equal(t, "e3", engagements[0].Id)
	})

	t.Run("Ledger Limit", func(t *testing.T) {
		entries, err := s.ListLedgerEntries(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "e3", entries[0].EntryID)
		assert.Equal(t, "e2", entries[1].EntryID)

		entries, err = s.ListMemberLedgerEntries(ctx, "bob", 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "e2", entries[0].EntryID)
	})

	t.Run("Copies", func(t *testing.T) {
		m, err := s.GetMember(ctx, "alice")
		require.NoError(t, err)
		m.Balance = decimal.NewFromInt(100)

		again, err := s.GetMember(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, again.Balance.IsZero())
	})
}
