package storage

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// LedgerStateStore defines the interface for the persisted per-user balance
// and commission. A missing state reads back zero-valued, never as an error.
type LedgerStateStore interface {
	// GetLedgerState retrieves the ledger state for a username. Absent states
	// return a zeroed LedgerState for that username.
	GetLedgerState(ctx context.Context, username string) (*models.LedgerState, error)

	// PutLedgerState stores the ledger state wholesale.
	PutLedgerState(ctx context.Context, state *models.LedgerState) error
}

// LedgerFeedStore defines the interface for the persisted transaction feed.
type LedgerFeedStore interface {
	// AppendLedgerEntry appends one received transaction to a user's feed.
	AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error

	// ListLedgerEntries retrieves a user's feed entries in receipt order, up
	// to limit. A limit <= 0 means no limit.
	ListLedgerEntries(ctx context.Context, username string, limit int) ([]models.LedgerEntry, error)

	// ClearLedgerEntries drops a user's feed. Called on settlement reset.
	ClearLedgerEntries(ctx context.Context, username string) error
}

// LedgerStore combines state and feed access for the simulator.
type LedgerStore interface {
	LedgerStateStore
	LedgerFeedStore
}
