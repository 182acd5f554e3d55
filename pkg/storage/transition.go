package storage

import (
	"context"

	"github.com/chris/hive-timebank/pkg/models"
)

// Transition is the complete set of writes produced by one ledger operation.
//
// Every member and engagement carries the version it will have once written.
// A version of 1 creates the entity; any other version N replaces the stored
// entity only if it is still at version N-1. Entries are appended.
type Transition struct {
	Members    []*models.Member
	Engagement *models.Engagement
	Entries    []models.LedgerEntry
}

// Applier defines the highly-privileged interface for committing a transition.
// Only the ledger engine should hold it.
type Applier interface {
	// Apply writes the transition atomically: either every write succeeds or none does.
	// It returns ErrAlreadyExists if a created entity exists, and ErrConflict if any
	// replaced entity is not at its expected version.
	Apply(ctx context.Context, t *Transition) error
}
