package memory

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// GetLedgerState retrieves the ledger state for a username. Absent states
// read back zero-valued.
func (s *Store) GetLedgerState(ctx context.Context, username string) (*models.LedgerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.ledgers[username]
	if !ok {
		return &models.LedgerState{Username: username}, nil
	}
	return &state, nil
}

// PutLedgerState stores the ledger state wholesale.
func (s *Store) PutLedgerState(ctx context.Context, state *models.LedgerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledgers[state.Username] = *state
	return nil
}

// AppendLedgerEntry appends one received transaction to a user's feed.
func (s *Store) AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feeds[entry.Username] = append(s.feeds[entry.Username], *entry)
	return nil
}

// ListLedgerEntries retrieves a user's feed entries in receipt order.
func (s *Store) ListLedgerEntries(ctx context.Context, username string, limit int) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feed := s.feeds[username]
	if limit > 0 && len(feed) > limit {
		feed = feed[len(feed)-limit:]
	}
	return append([]models.LedgerEntry(nil), feed...), nil
}

// ClearLedgerEntries drops a user's feed.
func (s *Store) ClearLedgerEntries(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.feeds, username)
	return nil
}
