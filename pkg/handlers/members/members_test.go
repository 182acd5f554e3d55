package members_test

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
	"github.com/chris/hive-timebank/pkg/handlers/members"
	"github.com/chris/hive-timebank/pkg/storage"
	"github.com/chris/hive-timebank/pkg/storage/memory"
	"github.com/chris/hive-timebank/pkg/storage/mocks"
	"github.com/chris/hive-timebank/pkg/timebank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLedger(store storage.Storage) *timebank.Ledger {
	return timebank.New(store, nil, timebank.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func TestCreateMember(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := members.NewMembersHandler(newLedger(memory.New()))

		body, _ := json.Marshal(api.NewMember{MemberId: "alice@example.org"})
		req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		h.CreateMember(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var member api.Member
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &member))
		assert.Equal(t, "alice@example.org", member.MemberId)
		assert.Equal(t, 3.0, member.BalanceHours)
		assert.Equal(t, 0.0, member.ReservedHours)
		assert.Equal(t, int64(1), member.Version)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		// Arrange
		h := members.NewMembersHandler(newLedger(mocks.NewStorage(t)))

		req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader("{invalid"))
		rr := httptest.NewRecorder()

		// Act
		h.CreateMember(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid request body")
	})

	t.Run("Member ID Too Long", func(t *testing.T) {
		// Arrange
		h := members.NewMembersHandler(newLedger(mocks.NewStorage(t)))

		body, _ := json.Marshal(api.NewMember{MemberId: strings.Repeat("a", 129)})
		req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		h.CreateMember(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "memberId")
	})

	t.Run("Already Exists", func(t *testing.T) {
		// Arrange
		l := newLedger(memory.New())
		_, err := l.OpenAccount(context.Background(), "alice")
		require.NoError(t, err)
		h := members.NewMembersHandler(l)

		body, _ := json.Marshal(api.NewMember{MemberId: "alice"})
		req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		h.CreateMember(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), string(timebank.KindAlreadyExists))
	})
}

func TestGetMemberById(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		l := newLedger(memory.New())
		_, err := l.OpenAccount(context.Background(), "alice")
		require.NoError(t, err)
		h := members.NewMembersHandler(l)

		req := httptest.NewRequest(http.MethodGet, "/members/alice", nil)
		rr := httptest.NewRecorder()

		// Act
		h.GetMemberById(rr, req, "alice")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var member api.Member
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &member))
		assert.Equal(t, "alice", member.MemberId)
	})

	t.Run("Not Found", func(t *testing.T) {
		// Arrange
		h := members.NewMembersHandler(newLedger(memory.New()))

		req := httptest.NewRequest(http.MethodGet, "/members/ghost", nil)
		rr := httptest.NewRecorder()

		// Act
		h.GetMemberById(rr, req, "ghost")

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListMembers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		l := newLedger(memory.New())
		for _, id := range []string{"carol", "alice", "bob"} {
			_, err := l.OpenAccount(context.Background(), id)
			require.NoError(t, err)
		}
		h := members.NewMembersHandler(l)

		req := httptest.NewRequest(http.MethodGet, "/members", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListMembers(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var returned []api.Member
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		require.Len(t, returned, 3)
		assert.Equal(t, "alice", returned[0].MemberId)
		assert.Equal(t, "carol", returned[2].MemberId)
	})

	t.Run("Storage Error", func(t *testing.T) {
		// Arrange
		mockStorage := mocks.NewStorage(t)
		mockStorage.On("ListMembers", mock.Anything).Return(nil, assert.AnError)
		h := members.NewMembersHandler(newLedger(mockStorage))

		req := httptest.NewRequest(http.MethodGet, "/members", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListMembers(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestListMemberEngagements(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		// Arrange
		h := members.NewMembersHandler(newLedger(memory.New()))

		req := httptest.NewRequest(http.MethodGet, "/members/ghost/engagements", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListMemberEngagements(rr, req, "ghost")

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Empty", func(t *testing.T) {
		// Arrange
		l := newLedger(memory.New())
		_, err := l.OpenAccount(context.Background(), "alice")
		require.NoError(t, err)
		h := members.NewMembersHandler(l)

		req := httptest.NewRequest(http.MethodGet, "/members/alice/engagements", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListMemberEngagements(rr, req, "alice")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}
