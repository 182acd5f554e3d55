package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/chris/hive-timebank/pkg/audit"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/chris/hive-timebank/pkg/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRequest(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Consistent Ledger", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Apply(context.Background(), &storage.Transition{
			Members: []*models.Member{{MemberId: "alice", Balance: decimal.NewFromInt(3), Version: 1}},
		}))
		h := &Handler{Auditor: audit.New(store, logger), Logger: logger}

		assert.NoError(t, h.HandleRequest(context.Background()))
	})

	t.Run("Violations Fail The Run", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Apply(context.Background(), &storage.Transition{
			Members: []*models.Member{{MemberId: "alice", Balance: decimal.NewFromInt(11), Version: 1}},
		}))
		h := &Handler{Auditor: audit.New(store, logger), Logger: logger}

		err := h.HandleRequest(context.Background())

		assert.ErrorContains(t, err, "violations")
	})
}
