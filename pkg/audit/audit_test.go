package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/chris/hive-timebank/pkg/audit"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/chris/hive-timebank/pkg/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func h(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCheck(t *testing.T) {
	t.Run("Consistent", func(t *testing.T) {
		members := []models.Member{
			{MemberId: "alice", Balance: h("1"), Reserved: h("2")},
			{MemberId: "bob", Balance: h("0"), PendingCredit: h("2")},
		}
		reserved := []models.Engagement{
			{Id: "e1", RequesterId: "alice", ProviderId: "bob", Hours: h("2"), State: models.RESERVED},
		}

		report := audit.Check(members, reserved)

		assert.True(t, report.OK(), "%+v", report.Violations)
		assert.True(t, report.TotalReserved.Equal(h("2")))
		assert.True(t, report.TotalPendingCredit.Equal(h("2")))
	})

	t.Run("Custody Broken", func(t *testing.T) {
		members := []models.Member{
			{MemberId: "alice", Balance: h("1"), Reserved: h("2")},
			{MemberId: "bob", Balance: h("0")},
		}
		reserved := []models.Engagement{
			{Id: "e1", RequesterId: "alice", ProviderId: "bob", Hours: h("2"), State: models.RESERVED},
		}

		report := audit.Check(members, reserved)

		assert.False(t, report.OK())
		rules := map[audit.Rule]bool{}
		for _, v := range report.Violations {
			rules[v.Rule] = true
		}
		assert.True(t, rules[audit.RulePendingMismatch])
		assert.True(t, rules[audit.RuleCustody])
	})

	t.Run("Band And Ceiling", func(t *testing.T) {
		members := []models.Member{
			{MemberId: "carol", Balance: h("10.5")},
			{MemberId: "dave", Balance: h("-1")},
			{MemberId: "erin", Balance: h("9"), Reserved: h("0.5"), PendingCredit: h("1")},
		}

		report := audit.Check(members, nil)

		rules := map[string][]audit.Rule{}
		for _, v := range report.Violations {
			rules[v.MemberID] = append(rules[v.MemberID], v.Rule)
		}
		assert.Contains(t, rules["carol"], audit.RuleBalanceBand)
		assert.Contains(t, rules["dave"], audit.RuleBalanceBand)
		assert.Contains(t, rules["erin"], audit.RuleCeiling)
	})

	t.Run("Unknown Member", func(t *testing.T) {
		reserved := []models.Engagement{
			{Id: "e1", RequesterId: "ghost", ProviderId: "bob", Hours: h("1"), State: models.RESERVED},
		}

		report := audit.Check([]models.Member{{MemberId: "bob", PendingCredit: h("1")}}, reserved)

		require.NotEmpty(t, report.Violations)
		assert.Equal(t, audit.RuleUnknownMember, report.Violations[0].Rule)
		assert.Equal(t, "ghost", report.Violations[0].MemberID)
	})
}

func TestAuditor_Run(t *testing.T) {
	store := memory.New()
	now := time.Now()
	require.NoError(t, store.Apply(context.Background(), &storage.Transition{
		Members: []*models.Member{
			{MemberId: "alice", Balance: h("2"), Reserved: h("1"), Version: 1, CreatedAt: now},
			{MemberId: "bob", Balance: h("3"), PendingCredit: h("1"), Version: 1, CreatedAt: now},
		},
		Engagement: &models.Engagement{Id: "e1", RequesterId: "alice", ProviderId: "bob", Hours: h("1"), State: models.RESERVED, Version: 1, CreatedAt: now},
	}))

	report, err := audit.New(store, nil).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, report.OK(), "%+v", report.Violations)
	assert.Equal(t, 2, report.Members)
	assert.Equal(t, 1, report.ReservedEngagements)
	assert.True(t, report.TotalBalance.Equal(h("5")))
	assert.False(t, report.CheckedAt.IsZero())
}
