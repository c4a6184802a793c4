// Package anchor provides the wall-clock-anchored countdown used to gate the
// timed-wait activation variant. The store holds a start instant, never a
// remaining duration, so elapsed time is recomputed from real time on every
// observation and survives missed ticks and process restarts.
package anchor

import (
	"context"
	"time"

	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// DefaultTotal is the activation wait enforced by the timed-wait variant.
const DefaultTotal = 90 * time.Minute

// Anchor computes countdown state from a persisted start instant.
type Anchor struct {
	Store storage.AnchorStore
	Total time.Duration

	now func() time.Time
}

// New creates an Anchor with the default 90-minute duration.
func New(store storage.AnchorStore) *Anchor {
	return NewWithClock(store, DefaultTotal, time.Now)
}

// NewWithClock creates an Anchor with an injected total duration and clock,
// for tests.
func NewWithClock(store storage.AnchorStore, total time.Duration, now func() time.Time) *Anchor {
	return &Anchor{Store: store, Total: total, now: now}
}

// Start persists a start instant for the username if none exists.
// An existing anchor is reused, so Start is idempotent across reloads.
func (a *Anchor) Start(ctx context.Context, username string) error {
	existing, err := a.Store.GetAnchor(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return a.Store.PutAnchor(ctx, &models.TimerAnchorRecord{
		Username:         username,
		StartEpochMillis: a.now().UnixMilli(),
	})
}

// Remaining reports the time left on the countdown and whether it has
// completed. When the countdown reaches zero the anchor is removed; that
// removal is the transition into "ledger unlocked". An absent anchor reads
// as complete.
func (a *Anchor) Remaining(ctx context.Context, username string) (time.Duration, bool, error) {
	record, err := a.Store.GetAnchor(ctx, username)
	if err != nil {
		return 0, false, err
	}
	if record == nil {
		return 0, true, nil
	}

	elapsed := a.now().Sub(record.Start())
	remaining := a.Total - elapsed
	if remaining <= 0 {
		if err := a.Store.RemoveAnchor(ctx, username); err != nil {
			return 0, false, err
		}
		return 0, true, nil
	}
	return remaining, false, nil
}

// Active reports whether a countdown is currently persisted for the username.
func (a *Anchor) Active(ctx context.Context, username string) (bool, error) {
	record, err := a.Store.GetAnchor(ctx, username)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}
