package storage

import (
	"context"

	"github.com/chris/hive-timebank/pkg/models"
)

// MemberReader defines the interface for reading member accounts.
// Accounts are only ever written through an Applier.
type MemberReader interface {
	// GetMember retrieves a member by ID. It returns ErrNotFound if there is no account.
	GetMember(ctx context.Context, memberID string) (*models.Member, error)

	// ListMembers retrieves all members.
	ListMembers(ctx context.Context) ([]models.Member, error)
}
