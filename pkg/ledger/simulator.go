// Package ledger implements the randomized incoming-funds simulator. All
// progress lives in the store as persisted balance and commission, so a
// restart resumes exactly where the last persisted transaction left off; the
// pending timer itself is the only thing lost.
package ledger

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chris/onboarding-funnel/pkg/feed"
	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/money"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// Default simulation parameters, matching the production deployments.
const (
	DefaultCap       = 53000.0
	DefaultMinDelay  = 3000 * time.Millisecond
	DefaultMaxDelay  = 8000 * time.Millisecond
	DefaultMinAmount = 100
	DefaultMaxAmount = 3500
)

// Config carries the tunable simulation parameters. CommissionRate is the
// only one that differs between deployments (0.12 and 0.035 observed).
type Config struct {
	CommissionRate float64
	Cap            float64
	MinDelay       time.Duration
	MaxDelay       time.Duration
	MinAmount      int
	MaxAmount      int
}

// withDefaults fills zero fields with the default parameters.
func (c Config) withDefaults() Config {
	if c.Cap == 0 {
		c.Cap = DefaultCap
	}
	if c.MinDelay == 0 {
		c.MinDelay = DefaultMinDelay
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	if c.MinAmount == 0 {
		c.MinAmount = DefaultMinAmount
	}
	if c.MaxAmount == 0 {
		c.MaxAmount = DefaultMaxAmount
	}
	return c
}

// Simulator produces a monotonically increasing balance per username until
// the cap, persisting after every change and publishing each transaction to
// the feed. At most one schedule is ever pending per username.
type Simulator struct {
	Store     storage.LedgerStore
	Publisher feed.Publisher
	Config    Config

	mu      sync.Mutex
	pending map[string]*time.Timer
	rng     *rand.Rand
	now     func() time.Time
}

// New creates a Simulator.
func New(store storage.LedgerStore, publisher feed.Publisher, cfg Config) *Simulator {
	return NewWithSource(store, publisher, cfg, rand.NewSource(time.Now().UnixNano()), time.Now)
}

// NewWithSource creates a Simulator with injected randomness and clock, for
// tests.
func NewWithSource(store storage.LedgerStore, publisher feed.Publisher, cfg Config, src rand.Source, now func() time.Time) *Simulator {
	return &Simulator{
		Store:     store,
		Publisher: publisher,
		Config:    cfg.withDefaults(),
		pending:   make(map[string]*time.Timer),
		rng:       rand.New(src),
		now:       now,
	}
}

// Start begins scheduling transactions for the username. Starting while a
// schedule is already pending is a no-op, and a balance at or over the cap
// schedules nothing.
func (s *Simulator) Start(ctx context.Context, username string) error {
	state, err := s.Store.GetLedgerState(ctx, username)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[username]; ok {
		return nil
	}
	if state.Balance >= s.Config.Cap {
		return nil
	}
	s.schedule(username)
	return nil
}

// Stop cancels any pending schedule for the username. Cancellation is
// best-effort: a timer that already fired applies its transaction through the
// store, which tolerates the stray update.
func (s *Simulator) Stop(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.pending[username]; ok {
		timer.Stop()
		delete(s.pending, username)
	}
}

// Running reports whether a schedule is currently pending for the username.
func (s *Simulator) Running(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[username]
	return ok
}

// Snapshot reads the persisted ledger state for the username.
func (s *Simulator) Snapshot(ctx context.Context, username string) (*models.LedgerState, error) {
	return s.Store.GetLedgerState(ctx, username)
}

// Reset zeroes balance and commission, cancels any pending schedule, and
// clears the persisted feed. This is the only operation that decreases a
// balance and is reachable only from withdrawal settlement. It is idempotent.
func (s *Simulator) Reset(ctx context.Context, username string) error {
	s.Stop(username)

	if err := s.Store.PutLedgerState(ctx, &models.LedgerState{Username: username}); err != nil {
		return err
	}
	return s.Store.ClearLedgerEntries(ctx, username)
}

// ApplyTransaction credits one amount to the username's balance, recomputes
// commission, persists both, appends a feed entry, and publishes the event.
// It is exported so callers with a deterministic amount sequence (tests, the
// settlement reconciler) share the exact arithmetic of the simulator.
func (s *Simulator) ApplyTransaction(ctx context.Context, username string, amount float64) (*models.LedgerState, error) {
	state, err := s.Store.GetLedgerState(ctx, username)
	if err != nil {
		return nil, err
	}

	state.Balance = money.Round2(state.Balance + amount)
	state.Commission = money.Round2(state.Balance * s.Config.CommissionRate)
	if err := s.Store.PutLedgerState(ctx, state); err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		EntryID:    uuid.New().String(),
		Username:   username,
		Amount:     amount,
		Balance:    state.Balance,
		ReceivedAt: s.now(),
	}
	if err := s.Store.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.Publisher.Publish(ctx, feed.Message{
		Type: feed.MessageTypeTransactionReceived,
		Payload: feed.TransactionReceivedPayload{
			Username:      username,
			TransactionID: entry.EntryID,
			Amount:        amount,
			NewBalance:    state.Balance,
			Commission:    state.Commission,
		},
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish transaction event", "username", username, "error", err)
	}

	if state.Balance >= s.Config.Cap {
		slog.InfoContext(ctx, "ledger cap reached, transactions stopped", "username", username, "balance", state.Balance)
		if err := s.Publisher.Publish(ctx, feed.Message{
			Type:    feed.MessageTypeLimitReached,
			Payload: feed.LimitReachedPayload{Username: username, Balance: state.Balance},
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish limit event", "username", username, "error", err)
		}
	}

	return state, nil
}

// schedule arms the next transaction timer for the username.
// Callers must hold s.mu.
func (s *Simulator) schedule(username string) {
	spread := int64(s.Config.MaxDelay - s.Config.MinDelay)
	delay := s.Config.MinDelay + time.Duration(s.rng.Int63n(spread))
	s.pending[username] = time.AfterFunc(delay, func() {
		s.fire(username)
	})
}

// fire runs when a scheduled timer elapses: draw an amount, apply it, and
// reschedule while still under the cap.
func (s *Simulator) fire(username string) {
	ctx := context.Background()

	s.mu.Lock()
	if _, ok := s.pending[username]; !ok {
		// Stopped after the timer fired but before we ran.
		s.mu.Unlock()
		return
	}
	delete(s.pending, username)
	amount := float64(s.Config.MinAmount + s.rng.Intn(s.Config.MaxAmount-s.Config.MinAmount+1))
	s.mu.Unlock()

	state, err := s.ApplyTransaction(ctx, username, amount)
	if err != nil {
		slog.ErrorContext(ctx, "failed to apply simulated transaction", "username", username, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[username]; ok {
		// A concurrent Start re-armed the schedule already.
		return
	}
	if state.Balance < s.Config.Cap {
		s.schedule(username)
	}
}
