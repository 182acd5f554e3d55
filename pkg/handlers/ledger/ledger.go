package ledger

import (
	"context"
	"net/http"

	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/handlers/respond"
	"github.com/chris/hive-timebank/pkg/mapping"
	"github.com/chris/hive-timebank/pkg/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	defaultLimit = int32(20)
	maxLimit     = int32(1000)
)

// Service is the part of the ledger used by the journal handlers.
type Service interface {
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
	ListMemberLedgerEntries(ctx context.Context, memberID string, limit int32) ([]models.LedgerEntry, error)
}

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Ledger Service
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger Service) *LedgerHandler {
	return &LedgerHandler{Ledger: ledger}
}

func limitOf(param *int32) (int32, error) {
	if param == nil {
		return defaultLimit, nil
	}
	if err := validation.Validate(*param, validation.Min(int32(1)), validation.Max(maxLimit)); err != nil {
		return 0, validation.Errors{"limit": err}
	}
	return *param, nil
}

// ListLedgerEntries lists the most recent journal entries, newest first.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	limit, err := limitOf(params.Limit)
	if err != nil {
		respond.Invalid(w, r, err)
		return
	}

	entries, err := h.Ledger.ListLedgerEntries(r.Context(), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, toApiEntries(entries))
}

// ListMemberLedgerEntries lists the most recent journal entries of one member.
func (h *LedgerHandler) ListMemberLedgerEntries(w http.ResponseWriter, r *http.Request, memberId string, params api.ListMemberLedgerEntriesParams) {
	limit, err := limitOf(params.Limit)
	if err != nil {
		respond.Invalid(w, r, err)
		return
	}

	entries, err := h.Ledger.ListMemberLedgerEntries(r.Context(), memberId, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, toApiEntries(entries))
}

func toApiEntries(entries []models.LedgerEntry) []*api.LedgerEntry {
	apiEntries := make([]*api.LedgerEntry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}
	return apiEntries
}
