package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/chris/hive-timebank/pkg/config"
	"github.com/chris/hive-timebank/pkg/events"
	"github.com/chris/hive-timebank/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Memory Backend", func(t *testing.T) {
		cfg := &config.Config{StoreBackend: config.BackendMemory, MaxRetries: 3}

		svc, err := New(context.Background(), cfg, logger)

		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, svc.Store)
		assert.IsType(t, &events.NoOpPublisher{}, svc.Publisher)

		member, err := svc.Ledger.OpenAccount(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", member.MemberId)

		report, err := svc.Auditor.Run(context.Background())
		require.NoError(t, err)
		assert.True(t, report.OK())
	})

	t.Run("Unknown Backend", func(t *testing.T) {
		_, err := New(context.Background(), &config.Config{StoreBackend: "postgres"}, logger)

		assert.ErrorContains(t, err, "unknown store backend")
	})
}
