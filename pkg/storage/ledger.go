package storage

import (
	"context"

	"github.com/chris/hive-timebank/pkg/models"
)

// LedgerReader reads the journal of balance movements. Entries are only
// appended, as part of a Transition.
type LedgerReader interface {
	// ListLedgerEntries returns up to limit entries across all members, newest first.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)

	// ListMemberLedgerEntries returns up to limit entries of one member, newest first.
	ListMemberLedgerEntries(ctx context.Context, memberID string, limit int32) ([]models.LedgerEntry, error)
}
