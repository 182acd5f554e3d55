package engagements

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/handlers/respond"
	"github.com/chris/hive-timebank/pkg/mapping"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/timebank"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	maxMessageLength = 2000
	maxReasonLength  = 500
	maxPostIDLength  = 128
)

// Service is the part of the ledger used by the engagement handlers.
type Service interface {
	ProposeEngagement(ctx context.Context, p timebank.Proposal) (*models.Engagement, error)
	GetEngagement(ctx context.Context, engagementID string) (*models.Engagement, error)
	Reserve(ctx context.Context, engagementID string) (*models.Engagement, error)
	ConfirmCompletion(ctx context.Context, engagementID string, party models.Party) (*models.Engagement, error)
	Cancel(ctx context.Context, engagementID string, reason string) (*models.Engagement, error)
}

// EngagementsHandler holds the dependencies for engagement-related handlers.
type EngagementsHandler struct {
	Ledger Service
}

// NewEngagementsHandler creates a new EngagementsHandler.
func NewEngagementsHandler(ledger Service) *EngagementsHandler {
	return &EngagementsHandler{Ledger: ledger}
}

// Participants and hours are checked by the ledger so that they are reported
// with their own error kinds; request validation covers the free-text fields.
func validateNewEngagement(e *api.NewEngagement) error {
	return validation.ValidateStruct(e,
		validation.Field(&e.PostId, validation.NilOrNotEmpty, validation.Length(1, maxPostIDLength)),
		validation.Field(&e.Message, validation.Length(0, maxMessageLength)),
	)
}

func validateCancelRequest(c *api.CancelRequest) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Reason, validation.Length(0, maxReasonLength)),
	)
}

// CreateEngagement proposes an engagement between two members.
func (h *EngagementsHandler) CreateEngagement(w http.ResponseWriter, r *http.Request) {
	var newEngagement api.NewEngagement
	if err := respond.Decode(r, &newEngagement); err != nil {
		respond.Invalid(w, r, err)
		return
	}
	if err := validateNewEngagement(&newEngagement); err != nil {
		respond.Invalid(w, r, err)
		return
	}

	eng, err := h.Ledger.ProposeEngagement(r.Context(), mapping.ToDomainProposal(&newEngagement))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, mapping.ToApiEngagement(eng))
}

// GetEngagementById handles the logic for retrieving an engagement by its ID.
func (h *EngagementsHandler) GetEngagementById(w http.ResponseWriter, r *http.Request, engagementId openapi_types.UUID) {
	eng, err := h.Ledger.GetEngagement(r.Context(), engagementId.String())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, mapping.ToApiEngagement(eng))
}

// ReserveEngagement debits the requester and records the provider's pending credit.
func (h *EngagementsHandler) ReserveEngagement(w http.ResponseWriter, r *http.Request, engagementId openapi_types.UUID) {
	eng, err := h.Ledger.Reserve(r.Context(), engagementId.String())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, mapping.ToApiEngagement(eng))
}

// ConfirmEngagement records one party's confirmation and settles once both confirmed.
func (h *EngagementsHandler) ConfirmEngagement(w http.ResponseWriter, r *http.Request, engagementId openapi_types.UUID) {
	var req api.ConfirmRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Invalid(w, r, err)
		return
	}

	eng, err := h.Ledger.ConfirmCompletion(r.Context(), engagementId.String(), models.Party(req.Party))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, mapping.ToApiEngagement(eng))
}

// CancelEngagement rejects a proposed engagement or cancels a reserved one with a refund.
// The request body is optional.
func (h *EngagementsHandler) CancelEngagement(w http.ResponseWriter, r *http.Request, engagementId openapi_types.UUID) {
	var req api.CancelRequest
	if err := respond.Decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respond.Invalid(w, r, err)
		return
	}
	if err := validateCancelRequest(&req); err != nil {
		respond.Invalid(w, r, err)
		return
	}

	var reason string
	if req.Reason != nil {
		reason = *req.Reason
	}
	eng, err := h.Ledger.Cancel(r.Context(), engagementId.String(), reason)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, mapping.ToApiEngagement(eng))
}
