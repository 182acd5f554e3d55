package storage

import (
	"context"

	"github.com/chris/hive-timebank/pkg/models"
)

// EngagementReader defines the interface for reading engagements.
type EngagementReader interface {
	// GetEngagement retrieves an engagement by ID. It returns ErrNotFound if it does not exist.
	GetEngagement(ctx context.Context, engagementID string) (*models.Engagement, error)

	// ListEngagementsByMember retrieves the engagements where the member is the
	// requester or the provider, newest first.
	ListEngagementsByMember(ctx context.Context, memberID string) ([]models.Engagement, error)

	// ListEngagementsByState retrieves all engagements in the given state.
	ListEngagementsByState(ctx context.Context, state models.EngagementState) ([]models.Engagement, error)
}
