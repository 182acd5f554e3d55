package engagements_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/handlers/engagements"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/chris/hive-timebank/pkg/storage/memory"
	"github.com/chris/hive-timebank/pkg/storage/mocks"
	"github.com/chris/hive-timebank/pkg/timebank"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T, store storage.Storage, members ...string) *timebank.Ledger {
	t.Helper()
	l := timebank.New(store, nil, timebank.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	for _, id := range members {
		_, err := l.OpenAccount(context.Background(), id)
		require.NoError(t, err)
	}
	return l
}

func post(h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeEngagement(t *testing.T, rr *httptest.ResponseRecorder) api.Engagement {
	t.Helper()
	var eng api.Engagement
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &eng), rr.Body.String())
	return eng
}

func proposeAndReserve(t *testing.T, l *timebank.Ledger, hours string) *models.Engagement {
	t.Helper()
	eng, err := l.ProposeEngagement(context.Background(), timebank.Proposal{RequesterID: "alice", ProviderID: "bob", Hours: decimal.RequireFromString(hours)})
	require.NoError(t, err)
	eng, err = l.Reserve(context.Background(), eng.Id)
	require.NoError(t, err)
	return eng
}

func TestCreateEngagement(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := engagements.NewEngagementsHandler(newLedger(t, memory.New(), "alice", "bob"))
		postID := "post-42"
		message := "Could you help me fix my bike?"

		// Act
		rr := post(h.CreateEngagement, "/engagements", api.NewEngagement{
			RequesterId: "alice",
			ProviderId:  "bob",
			Hours:       1.5,
			PostId:      &postID,
			Message:     &message,
		})

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		eng := decodeEngagement(t, rr)
		assert.Equal(t, api.Proposed, eng.State)
		assert.Equal(t, 1.5, eng.Hours)
		assert.NotEqual(t, uuid.Nil, eng.EngagementId)
		require.NotNil(t, eng.PostId)
		assert.Equal(t, postID, *eng.PostId)
		require.NotNil(t, eng.Message)
		assert.Equal(t, message, *eng.Message)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, mocks.NewStorage(t)))

		req := httptest.NewRequest(http.MethodPost, "/engagements", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		h.CreateEngagement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Message Too Long", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, mocks.NewStorage(t)))
		message := strings.Repeat("x", 2001)

		rr := post(h.CreateEngagement, "/engagements", api.NewEngagement{RequesterId: "alice", ProviderId: "bob", Hours: 1, Message: &message})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), string(timebank.KindInvalidRequest))
	})

	t.Run("Empty Post ID", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, mocks.NewStorage(t)))
		postID := ""

		rr := post(h.CreateEngagement, "/engagements", api.NewEngagement{RequesterId: "alice", ProviderId: "bob", Hours: 1, PostId: &postID})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Hours Above Maximum", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, mocks.NewStorage(t)))

		rr := post(h.CreateEngagement, "/engagements", api.NewEngagement{RequesterId: "alice", ProviderId: "bob", Hours: 10.5})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), string(timebank.KindInvalidDuration))
	})

	t.Run("Unknown Provider", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, memory.New(), "alice"))

		rr := post(h.CreateEngagement, "/engagements", api.NewEngagement{RequesterId: "alice", ProviderId: "ghost", Hours: 1})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestReserveEngagement(t *testing.T) {
	t.Run("Provider At Capacity", func(t *testing.T) {
		// Arrange
		store := memory.New()
		l := newLedger(t, store, "alice", "bob", "carol")
		// bob earns 5 hours and holds 8.
		for _, settled := range []struct{ requester, hours string }{{"carol", "2"}, {"alice", "3"}} {
			eng, err := l.ProposeEngagement(context.Background(), timebank.Proposal{RequesterID: settled.requester, ProviderID: "bob", Hours: decimal.RequireFromString(settled.hours)})
			require.NoError(t, err)
			_, err = l.Reserve(context.Background(), eng.Id)
			require.NoError(t, err)
			_, err = l.ConfirmCompletion(context.Background(), eng.Id, models.PartyRequester)
			require.NoError(t, err)
			_, err = l.ConfirmCompletion(context.Background(), eng.Id, models.PartyProvider)
			require.NoError(t, err)
		}
		eng, err := l.ProposeEngagement(context.Background(), timebank.Proposal{RequesterID: "carol", ProviderID: "bob", Hours: decimal.NewFromInt(1)})
		require.NoError(t, err)
		_, err = l.OpenAccount(context.Background(), "dave")
		require.NoError(t, err)
		over, err := l.ProposeEngagement(context.Background(), timebank.Proposal{RequesterID: "dave", ProviderID: "bob", Hours: decimal.NewFromInt(3)})
		require.NoError(t, err)
		h := engagements.NewEngagementsHandler(l)

		// Act
		ok := post(func(w http.ResponseWriter, r *http.Request) {
			h.ReserveEngagement(w, r, uuid.MustParse(eng.Id))
		}, "/engagements/"+eng.Id+"/reserve", nil)
		rejected := post(func(w http.ResponseWriter, r *http.Request) {
			h.ReserveEngagement(w, r, uuid.MustParse(over.Id))
		}, "/engagements/"+over.Id+"/reserve", nil)

		// Assert
		assert.Equal(t, http.StatusOK, ok.Code)
		assert.Equal(t, http.StatusUnprocessableEntity, rejected.Code)
		assert.Contains(t, rejected.Body.String(), string(timebank.KindProviderAtCapacity))
	})

	t.Run("Not Found", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, memory.New()))
		id := uuid.New()

		rr := post(func(w http.ResponseWriter, r *http.Request) {
			h.ReserveEngagement(w, r, id)
		}, "/engagements/"+id.String()+"/reserve", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestConfirmEngagement(t *testing.T) {
	t.Run("Both Parties", func(t *testing.T) {
		// Arrange
		l := newLedger(t, memory.New(), "alice", "bob")
		eng := proposeAndReserve(t, l, "2")
		h := engagements.NewEngagementsHandler(l)
		confirm := func(w http.ResponseWriter, r *http.Request) {
			h.ConfirmEngagement(w, r, uuid.MustParse(eng.Id))
		}

		// Act
		first := post(confirm, "/engagements/"+eng.Id+"/confirm", api.ConfirmRequest{Party: api.Provider})
		second := post(confirm, "/engagements/"+eng.Id+"/confirm", api.ConfirmRequest{Party: api.Requester})

		// Assert
		require.Equal(t, http.StatusOK, first.Code)
		assert.True(t, decodeEngagement(t, first).ConfirmedByProvider)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, api.Settled, decodeEngagement(t, second).State)
	})

	t.Run("Unknown Party", func(t *testing.T) {
		l := newLedger(t, memory.New(), "alice", "bob")
		eng := proposeAndReserve(t, l, "1")
		h := engagements.NewEngagementsHandler(l)

		rr := post(func(w http.ResponseWriter, r *http.Request) {
			h.ConfirmEngagement(w, r, uuid.MustParse(eng.Id))
		}, "/engagements/"+eng.Id+"/confirm", map[string]string{"party": "witness"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), string(timebank.KindInvalidParticipants))
	})

	t.Run("Missing Body", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, mocks.NewStorage(t)))
		id := uuid.New()

		rr := post(func(w http.ResponseWriter, r *http.Request) {
			h.ConfirmEngagement(w, r, id)
		}, "/engagements/"+id.String()+"/confirm", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), string(timebank.KindInvalidRequest))
	})
}

func TestCancelEngagement(t *testing.T) {
	t.Run("Refunds Reservation", func(t *testing.T) {
		// Arrange
		l := newLedger(t, memory.New(), "alice", "bob")
		eng := proposeAndReserve(t, l, "2")
		h := engagements.NewEngagementsHandler(l)
		reason := "provider unavailable"

		// Act
		rr := post(func(w http.ResponseWriter, r *http.Request) {
			h.CancelEngagement(w, r, uuid.MustParse(eng.Id))
		}, "/engagements/"+eng.Id+"/cancel", api.CancelRequest{Reason: &reason})

		// Assert
		require.Equal(t, http.StatusOK, rr.Code)
		cancelled := decodeEngagement(t, rr)
		assert.Equal(t, api.Cancelled, cancelled.State)
		require.NotNil(t, cancelled.CancelReason)
		assert.Equal(t, reason, *cancelled.CancelReason)

		alice, err := l.GetMember(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, alice.Balance.Equal(decimal.NewFromInt(3)))
	})

	t.Run("Rejects Without Body", func(t *testing.T) {
		l := newLedger(t, memory.New(), "alice", "bob")
		eng, err := l.ProposeEngagement(context.Background(), timebank.Proposal{RequesterID: "alice", ProviderID: "bob", Hours: decimal.NewFromInt(1)})
		require.NoError(t, err)
		h := engagements.NewEngagementsHandler(l)

		rr := post(func(w http.ResponseWriter, r *http.Request) {
			h.CancelEngagement(w, r, uuid.MustParse(eng.Id))
		}, "/engagements/"+eng.Id+"/cancel", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, api.Rejected, decodeEngagement(t, rr).State)
	})

	t.Run("Reason Too Long", func(t *testing.T) {
		h := engagements.NewEngagementsHandler(newLedger(t, mocks.NewStorage(t)))
		id := uuid.New()
		reason := strings.Repeat("r", 501)

		rr := post(func(w http.ResponseWriter, r *http.Request) {
			h.CancelEngagement(w, r, id)
		}, "/engagements/"+id.String()+"/cancel", api.CancelRequest{Reason: &reason})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		id := uuid.New()
		mockStorage.On("GetEngagement", mock.Anything, id.String()).Return(nil, assert.AnError)
		h := engagements.NewEngagementsHandler(newLedger(t, mockStorage))

		rr := post(func(w http.ResponseWriter, r *http.Request) {
			h.CancelEngagement(w, r, id)
		}, "/engagements/"+id.String()+"/cancel", nil)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "internal error")
	})
}
