package ledger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/ledger"
	"github.com/chris/onboarding-funnel/pkg/mapping"
	"github.com/chris/onboarding-funnel/pkg/money"
	"github.com/chris/onboarding-funnel/pkg/registry"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// LedgerHandler holds the dependencies for running-account handlers. All
// operations act on the logged-in user and fail closed without a session.
type LedgerHandler struct {
	Simulator *ledger.Simulator
	Registry  *registry.Registry
	Feed      storage.LedgerFeedStore
	Sessions  storage.SessionStore
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(sim *ledger.Simulator, reg *registry.Registry, feedStore storage.LedgerFeedStore, sessions storage.SessionStore) *LedgerHandler {
	return &LedgerHandler{Simulator: sim, Registry: reg, Feed: feedStore, Sessions: sessions}
}

// StartLedger begins (or resumes) transaction scheduling for the session
// user. Starting an already-running simulation is a no-op.
func (h *LedgerHandler) StartLedger(w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	if err := h.Simulator.Start(r.Context(), username); err != nil {
		http.Error(w, fmt.Sprintf("Failed to start simulator: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusOK, true, "Running account started.")
}

// StopLedger cancels the pending transaction schedule, best-effort.
func (h *LedgerHandler) StopLedger(w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	h.Simulator.Stop(username)
	writeResult(w, http.StatusOK, true, "Running account stopped.")
}

// GetLedgerSnapshot returns the persisted balance and commission along with
// display-formatted amounts and the linked-account banner.
func (h *LedgerHandler) GetLedgerSnapshot(w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	state, err := h.Simulator.Snapshot(r.Context(), username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve ledger state: %v", err), http.StatusInternalServerError)
		return
	}

	snapshot := &api.LedgerSnapshot{
		Username:          username,
		Balance:           state.Balance,
		Commission:        state.Commission,
		DisplayBalance:    money.Format(state.Balance),
		DisplayCommission: money.Format(state.Commission),
		LimitReached:      state.Balance >= h.Simulator.Config.Cap,
		Running:           h.Simulator.Running(username),
	}
	if details, err := h.Registry.GetAccountDetails(r.Context(), username); err == nil && details != nil {
		snapshot.LinkedAccount = "XXXX " + details.LinkedLast4()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListLedgerEntries returns the persisted transaction feed for the session
// user, most recent last.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.Feed.ListLedgerEntries(r.Context(), username, limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve ledger entries: %v", err), http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEntries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func (h *LedgerHandler) sessionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, err := h.Sessions.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read session: %v", err), http.StatusInternalServerError)
		return "", false
	}
	if username == "" {
		writeResult(w, http.StatusUnauthorized, false, "No active session. Please login!")
		return "", false
	}
	return username, true
}

func writeResult(w http.ResponseWriter, status int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.Result{Success: success, Message: message})
}
