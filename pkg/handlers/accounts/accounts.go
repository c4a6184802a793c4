package accounts

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/mapping"
	"github.com/chris/onboarding-funnel/pkg/registry"
)

// AccountsHandler holds the dependencies for identity-related handlers.
type AccountsHandler struct {
	Registry *registry.Registry
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(reg *registry.Registry) *AccountsHandler {
	return &AccountsHandler{Registry: reg}
}

// Register handles new user registration.
func (h *AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Registry.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to register: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, result.Success, result.Message)
}

// Login handles credential checks and session assignment.
func (h *AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Registry.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to login: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, result.Success, result.Message)
}

// Logout clears the session unconditionally.
func (h *AccountsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Registry.Logout(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to logout: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, true, "Logged out.")
}

// SaveAccountDetails replaces a user's bank details wholesale.
func (h *AccountsHandler) SaveAccountDetails(w http.ResponseWriter, r *http.Request, username string) {
	var details api.AccountDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Registry.SaveAccountDetails(r.Context(), username, mapping.ToDomainAccountDetails(&details))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to save account details: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, result.Success, result.Message)
}

// GetAccountDetails retrieves a user's bank details; null when none saved.
func (h *AccountsHandler) GetAccountDetails(w http.ResponseWriter, r *http.Request, username string) {
	details, err := h.Registry.GetAccountDetails(r.Context(), username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve account details: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiAccountDetails(details)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// SaveAutodebitDetails replaces a user's autodebit capture wholesale.
func (h *AccountsHandler) SaveAutodebitDetails(w http.ResponseWriter, r *http.Request, username string) {
	var details api.AutodebitDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Registry.SaveAutodebitDetails(r.Context(), username, mapping.ToDomainAutodebitDetails(&details))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to save autodebit details: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, result.Success, result.Message)
}

// GetAutodebitDetails retrieves a user's autodebit capture; null when none.
func (h *AccountsHandler) GetAutodebitDetails(w http.ResponseWriter, r *http.Request, username string) {
	details, err := h.Registry.GetAutodebitDetails(r.Context(), username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve autodebit details: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiAutodebitDetails(details)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// writeResult responds with the Result shape. Domain failures still return
// 200: the result object, not the status code, is the UI's display channel.
func writeResult(w http.ResponseWriter, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(api.Result{Success: success, Message: message})
}
