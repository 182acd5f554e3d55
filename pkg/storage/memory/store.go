// Package memory implements the storage interfaces in process memory.
//
// A single mutex serialises every Apply, so version checks and writes of one
// transition happen as one critical section. Reads return copies; callers never
// hold pointers into the store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
)

// Store implements the Storage interface in memory.
type Store struct {
	mu          sync.RWMutex
	members     map[string]models.Member
	engagements map[string]models.Engagement
	entries     []models.LedgerEntry
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		members:     make(map[string]models.Member),
		engagements: make(map[string]models.Engagement),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// GetMember retrieves a copy of a member's account.
func (s *Store) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	return &m, nil
}

// ListMembers retrieves all members ordered by ID.
func (s *Store) ListMembers(ctx context.Context) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberId < out[j].MemberId })
	return out, nil
}

// GetEngagement retrieves a copy of an engagement.
func (s *Store) GetEngagement(ctx context.Context, engagementID string) (*models.Engagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.engagements[engagementID]
	if !ok {
		return nil, fmt.Errorf("engagement %s: %w", engagementID, storage.ErrNotFound)
	}
	return &e, nil
}

// ListEngagementsByMember retrieves the member's engagements, newest first.
func (s *Store) ListEngagementsByMember(ctx context.Context, memberID string) ([]models.Engagement, error) {
	return s.filterEngagements(func(e *models.Engagement) bool {
		return e.RequesterId == memberID || e.ProviderId == memberID
	}), nil
}

// ListEngagementsByState retrieves all engagements in a state, newest first.
func (s *Store) ListEngagementsByState(ctx context.Context, state models.EngagementState) ([]models.Engagement, error) {
	return s.filterEngagements(func(e *models.Engagement) bool {
		return e.State == state
	}), nil
}

func (s *Store) filterEngagements(keep func(*models.Engagement) bool) []models.Engagement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Engagement{}
	for _, e := range s.engagements {
		if keep(&e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ListLedgerEntries retrieves the most recent entries, newest first.
func (s *Store) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	return s.recentEntries(limit, func(*models.LedgerEntry) bool { return true }), nil
}

// ListMemberLedgerEntries retrieves the most recent entries of one member, newest first.
func (s *Store) ListMemberLedgerEntries(ctx context.Context, memberID string, limit int32) ([]models.LedgerEntry, error) {
	return s.recentEntries(limit, func(e *models.LedgerEntry) bool { return e.MemberID == memberID }), nil
}

func (s *Store) recentEntries(limit int32, keep func(*models.LedgerEntry) bool) []models.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.LedgerEntry{}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && int32(len(out)) >= limit {
			break
		}
		if keep(&s.entries[i]) {
			out = append(out, s.entries[i])
		}
	}
	return out
}

// Apply checks every version condition of the transition and, only if all of
// them hold, writes it.
func (s *Store) Apply(ctx context.Context, t *storage.Transition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range t.Members {
		current, ok := s.members[m.MemberId]
		if err := checkVersion(ok, current.Version, m.Version); err != nil {
			return fmt.Errorf("member %s: %w", m.MemberId, err)
		}
	}
	if e := t.Engagement; e != nil {
		current, ok := s.engagements[e.Id]
		if err := checkVersion(ok, current.Version, e.Version); err != nil {
			return fmt.Errorf("engagement %s: %w", e.Id, err)
		}
	}

	for _, m := range t.Members {
		s.members[m.MemberId] = *m
	}
	if t.Engagement != nil {
		s.engagements[t.Engagement.Id] = *t.Engagement
	}
	s.entries = append(s.entries, t.Entries...)
	return nil
}

func checkVersion(exists bool, stored, next int64) error {
	if next == 1 {
		if exists {
			return storage.ErrAlreadyExists
		}
		return nil
	}
	if !exists || stored != next-1 {
		return storage.ErrConflict
	}
	return nil
}
