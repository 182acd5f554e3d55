package members

import (
	"context"
	"net/http"
	"regexp"

	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/handlers/respond"
	"github.com/chris/hive-timebank/pkg/mapping"
	"github.com/chris/hive-timebank/pkg/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var memberIDFormat = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.@-]*$`)

// Service is the part of the ledger used by the member handlers.
type Service interface {
	OpenAccount(ctx context.Context, memberID string) (*models.Member, error)
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	ListEngagements(ctx context.Context, memberID string) ([]models.Engagement, error)
}

// MembersHandler holds the dependencies for member-related handlers.
type MembersHandler struct {
	Ledger Service
}

// NewMembersHandler creates a new MembersHandler.
func NewMembersHandler(ledger Service) *MembersHandler {
	return &MembersHandler{Ledger: ledger}
}

func validateNewMember(m *api.NewMember) error {
	// An empty ID is left to the ledger, which reports it as invalid participants.
	return validation.ValidateStruct(m,
		validation.Field(&m.MemberId, validation.Length(1, 128), validation.Match(memberIDFormat)),
	)
}

// CreateMember opens an account holding the starting balance.
func (h *MembersHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var newMember api.NewMember
	if err := respond.Decode(r, &newMember); err != nil {
		respond.Invalid(w, r, err)
		return
	}
	if err := validateNewMember(&newMember); err != nil {
		respond.Invalid(w, r, err)
		return
	}

	member, err := h.Ledger.OpenAccount(r.Context(), newMember.MemberId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, mapping.ToApiMember(member))
}

// GetMemberById handles the logic for retrieving a member's account.
func (h *MembersHandler) GetMemberById(w http.ResponseWriter, r *http.Request, memberId string) {
	member, err := h.Ledger.GetMember(r.Context(), memberId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, mapping.ToApiMember(member))
}

// ListMembers handles the logic for retrieving all members.
func (h *MembersHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Ledger.ListMembers(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiMembers := make([]*api.Member, len(members))
	for i, member := range members {
		apiMembers[i] = mapping.ToApiMember(&member)
	}
	respond.JSON(w, r, http.StatusOK, apiMembers)
}

// ListMemberEngagements lists the engagements where the member is requester or provider.
func (h *MembersHandler) ListMemberEngagements(w http.ResponseWriter, r *http.Request, memberId string) {
	engagements, err := h.Ledger.ListEngagements(r.Context(), memberId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiEngagements := make([]*api.Engagement, len(engagements))
	for i, e := range engagements {
		apiEngagements[i] = mapping.ToApiEngagement(&e)
	}
	respond.JSON(w, r, http.StatusOK, apiEngagements)
}
