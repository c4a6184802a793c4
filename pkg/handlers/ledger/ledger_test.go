package ledger_test

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/feed"
	ledgerhandler "github.com/chris/onboarding-funnel/pkg/handlers/ledger"
	"github.com/chris/onboarding-funnel/pkg/ledger"
	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/registry"
	"github.com/chris/onboarding-funnel/pkg/storage/memory"
)

func newHandler(t *testing.T) (*ledgerhandler.LedgerHandler, *ledger.Simulator, *memory.Store) {
	t.Helper()

	store := memory.New()
	sim := ledger.NewWithSource(store, &feed.NoOpPublisher{}, ledger.Config{
		CommissionRate: 0.12,
		MinDelay:       time.Hour,
		MaxDelay:       2 * time.Hour,
	}, rand.NewSource(5), time.Now)

	h := ledgerhandler.NewLedgerHandler(sim, registry.New(store), store, store)
	return h, sim, store
}

func login(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.PutUser(ctx, &models.UserRecord{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		AccountDetails: &models.AccountDetails{
			AccountHolder: "Alice A",
			AccountNumber: "123456789012",
			IfscCode:      "HDFC0001234",
			BankName:      "HDFC",
			ContactNumber: "9876543210",
		},
	}))
	require.NoError(t, store.SetCurrentUser(ctx, "alice"))
}

func TestStartStopLedger(t *testing.T) {
	t.Run("No Session Fails Closed", func(t *testing.T) {
		h, _, _ := newHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/ledger/start", nil)
		rr := httptest.NewRecorder()

		h.StartLedger(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Start Then Stop", func(t *testing.T) {
		h, sim, store := newHandler(t)
		login(t, store)

		req := httptest.NewRequest(http.MethodPost, "/ledger/start", nil)
		rr := httptest.NewRecorder()
		h.StartLedger(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, sim.Running("alice"))

		req = httptest.NewRequest(http.MethodPost, "/ledger/stop", nil)
		rr = httptest.NewRecorder()
		h.StopLedger(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, sim.Running("alice"))
	})
}

func TestGetLedgerSnapshot(t *testing.T) {
	t.Run("Includes Display Amounts And Linked Account", func(t *testing.T) {
		h, sim, store := newHandler(t)
		login(t, store)

		_, err := sim.ApplyTransaction(context.Background(), "alice", 12500)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/ledger/snapshot", nil)
		rr := httptest.NewRecorder()
		h.GetLedgerSnapshot(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var snapshot api.LedgerSnapshot
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
		assert.Equal(t, 12500.0, snapshot.Balance)
		assert.Equal(t, "12,500", snapshot.DisplayBalance)
		assert.Equal(t, "1,500", snapshot.DisplayCommission)
		assert.Equal(t, "XXXX 9012", snapshot.LinkedAccount)
		assert.False(t, snapshot.LimitReached)
	})

	t.Run("Reports Limit Reached At Cap", func(t *testing.T) {
		h, sim, store := newHandler(t)
		login(t, store)

		_, err := sim.ApplyTransaction(context.Background(), "alice", 53000)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/ledger/snapshot", nil)
		rr := httptest.NewRecorder()
		h.GetLedgerSnapshot(rr, req)

		var snapshot api.LedgerSnapshot
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
		assert.True(t, snapshot.LimitReached)
		assert.False(t, snapshot.Running)
	})
}

func TestListLedgerEntries(t *testing.T) {
	t.Run("Limit Keeps Most Recent", func(t *testing.T) {
		h, sim, store := newHandler(t)
		login(t, store)
		ctx := context.Background()

		for _, amount := range []float64{100, 200, 300} {
			_, err := sim.ApplyTransaction(ctx, "alice", amount)
			require.NoError(t, err)
		}

		req := httptest.NewRequest(http.MethodGet, "/ledger/entries?limit=2", nil)
		rr := httptest.NewRecorder()
		h.ListLedgerEntries(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var entries []api.LedgerEntry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, 200.0, entries[0].Amount)
		assert.Equal(t, 300.0, entries[1].Amount)
		assert.NotEmpty(t, entries[1].DisplayAmount)
	})

	t.Run("Empty Feed", func(t *testing.T) {
		h, _, store := newHandler(t)
		login(t, store)

		req := httptest.NewRequest(http.MethodGet, "/ledger/entries", nil)
		rr := httptest.NewRecorder()
		h.ListLedgerEntries(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var entries []api.LedgerEntry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Empty(t, entries)
	})
}
