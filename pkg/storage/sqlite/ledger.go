package sqlite

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

const (
	ledgerKeyPrefix = "ledger:"
	feedKeyPrefix   = "feed:"
)

// GetLedgerState retrieves the ledger state for a username. Absent states
// read back zero-valued.
func (s *Store) GetLedgerState(ctx context.Context, username string) (*models.LedgerState, error) {
	var state models.LedgerState
	found, err := s.getValue(ctx, ledgerKeyPrefix+username, &state)
	if err != nil {
		return nil, err
	}
	if !found {
		return &models.LedgerState{Username: username}, nil
	}
	return &state, nil
}

// PutLedgerState stores the ledger state wholesale.
func (s *Store) PutLedgerState(ctx context.Context, state *models.LedgerState) error {
	return s.setValue(ctx, ledgerKeyPrefix+state.Username, state)
}

// AppendLedgerEntry appends one received transaction to a user's feed. The
// feed is held as a single JSON array; the simulator is the only writer for a
// username, so load-append-store is safe.
func (s *Store) AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	var feed []models.LedgerEntry
	if _, err := s.getValue(ctx, feedKeyPrefix+entry.Username, &feed); err != nil {
		return err
	}
	feed = append(feed, *entry)
	return s.setValue(ctx, feedKeyPrefix+entry.Username, feed)
}

// ListLedgerEntries retrieves a user's feed entries in receipt order.
func (s *Store) ListLedgerEntries(ctx context.Context, username string, limit int) ([]models.LedgerEntry, error) {
	var feed []models.LedgerEntry
	if _, err := s.getValue(ctx, feedKeyPrefix+username, &feed); err != nil {
		return nil, err
	}
	if limit > 0 && len(feed) > limit {
		feed = feed[len(feed)-limit:]
	}
	return feed, nil
}

// ClearLedgerEntries drops a user's feed.
func (s *Store) ClearLedgerEntries(ctx context.Context, username string) error {
	return s.removeValue(ctx, feedKeyPrefix+username)
}
