package timer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/onboarding-funnel/pkg/anchor"
	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// TimerHandler holds the dependencies for countdown handlers.
type TimerHandler struct {
	Anchor   *anchor.Anchor
	Sessions storage.SessionStore
}

// NewTimerHandler creates a new TimerHandler.
func NewTimerHandler(a *anchor.Anchor, sessions storage.SessionStore) *TimerHandler {
	return &TimerHandler{Anchor: a, Sessions: sessions}
}

// StartTimer persists an anchor for the session user if none exists.
func (h *TimerHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	if err := h.Anchor.Start(r.Context(), username); err != nil {
		http.Error(w, fmt.Sprintf("Failed to start timer: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusOK, true, "Countdown started.")
}

// GetTimerRemaining reports the recomputed remaining duration. This is the
// poll the UI renders its countdown from.
func (h *TimerHandler) GetTimerRemaining(w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	remaining, done, err := h.Anchor.Remaining(r.Context(), username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read timer: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	status := api.TimerStatus{RemainingSeconds: int64(remaining.Seconds()), Done: done}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func (h *TimerHandler) sessionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
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
