package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/chris/hive-timebank/pkg/storage/memory"
	"github.com/chris/hive-timebank/pkg/storage/mocks"
	"github.com/chris/hive-timebank/pkg/timebank"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLedger(store storage.Storage) *timebank.Ledger {
	return timebank.New(store, nil, timebank.Options{Logger: quietLogger(), MaxRetries: 1})
}

func message(t *testing.T, id string, body any) events.SQSMessage {
	t.Helper()
	raw, ok := body.(string)
	if !ok {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		raw = string(b)
	}
	return events.SQSMessage{MessageId: id, Body: raw}
}

func reservedEngagement(t *testing.T, l *timebank.Ledger) *models.Engagement {
	t.Helper()
	ctx := context.Background()
	for _, id := range []string{"alice", "bob"} {
		_, err := l.OpenAccount(ctx, id)
		require.NoError(t, err)
	}
	eng, err := l.ProposeEngagement(ctx, timebank.Proposal{RequesterID: "alice", ProviderID: "bob", Hours: decimal.NewFromInt(2)})
	require.NoError(t, err)
	eng, err = l.Reserve(ctx, eng.Id)
	require.NoError(t, err)
	return eng
}

func TestHandleRequest(t *testing.T) {
	t.Run("Settles After Both Confirmations", func(t *testing.T) {
		// Arrange
		l := newLedger(memory.New())
		eng := reservedEngagement(t, l)
		h := &Handler{Ledger: l, Logger: quietLogger()}

		// Act
		resp, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			message(t, "m-1", Command{EngagementID: eng.Id, Party: models.PartyRequester}),
			message(t, "m-2", Command{EngagementID: eng.Id, Party: models.PartyProvider}),
		}})

		// Assert
		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)
		settled, err := l.GetEngagement(context.Background(), eng.Id)
		require.NoError(t, err)
		assert.Equal(t, models.SETTLED, settled.State)
	})

	t.Run("Redelivery After Settlement Is Acknowledged", func(t *testing.T) {
		l := newLedger(memory.New())
		eng := reservedEngagement(t, l)
		h := &Handler{Ledger: l, Logger: quietLogger()}
		confirmations := []events.SQSMessage{
			message(t, "m-1", Command{EngagementID: eng.Id, Party: models.PartyRequester}),
			message(t, "m-2", Command{EngagementID: eng.Id, Party: models.PartyProvider}),
		}
		_, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: confirmations})
		require.NoError(t, err)

		resp, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: confirmations[1:]})

		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)
		entries, err := l.ListMemberLedgerEntries(context.Background(), "bob", 10)
		require.NoError(t, err)
		var settlements int
		for _, e := range entries {
			if e.Kind == models.EntrySettlement {
				settlements++
			}
		}
		assert.Equal(t, 1, settlements)
	})

	t.Run("Permanent Failures Are Dropped", func(t *testing.T) {
		l := newLedger(memory.New())
		eng := reservedEngagement(t, l)
		h := &Handler{Ledger: l, Logger: quietLogger()}

		resp, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			message(t, "malformed", "{not json"),
			message(t, "unknown-engagement", Command{EngagementID: "missing", Party: models.PartyProvider}),
			message(t, "unknown-party", Command{EngagementID: eng.Id, Party: "witness"}),
		}})

		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)
	})

	t.Run("Transient Failures Are Retried", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		mockStorage.On("GetEngagement", mock.Anything, "eng-1").Return(nil, assert.AnError)
		h := &Handler{Ledger: newLedger(mockStorage), Logger: quietLogger()}

		resp, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
			message(t, "m-1", Command{EngagementID: "eng-1", Party: models.PartyRequester}),
		}})

		require.NoError(t, err)
		require.Len(t, resp.BatchItemFailures, 1)
		assert.Equal(t, "m-1", resp.BatchItemFailures[0].ItemIdentifier)
	})
}
