package funnel

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/mapping"
	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/workflow"
)

// FunnelHandler holds the dependencies for workflow-related handlers.
type FunnelHandler struct {
	Machine *workflow.Machine
}

// NewFunnelHandler creates a new FunnelHandler.
func NewFunnelHandler(machine *workflow.Machine) *FunnelHandler {
	return &FunnelHandler{Machine: machine}
}

// AdvanceWorkflow applies one discrete funnel event for the logged-in user.
func (h *FunnelHandler) AdvanceWorkflow(w http.ResponseWriter, r *http.Request) {
	var req api.AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Machine.Advance(r.Context(), models.WorkflowStage(req.Stage), mapping.ToDomainPayload(&req))
	if err != nil {
		if errors.Is(err, workflow.ErrNoSession) {
			writeResult(w, http.StatusUnauthorized, false, "No active session. Please login!")
			return
		}
		http.Error(w, fmt.Sprintf("Failed to advance workflow: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusOK, result.Success, result.Message)
}

// GetWorkflowState reconstructs and returns the resumable funnel state.
func (h *FunnelHandler) GetWorkflowState(w http.ResponseWriter, r *http.Request) {
	state, err := h.Machine.Resume(r.Context())
	if err != nil {
		if errors.Is(err, workflow.ErrNoSession) {
			writeResult(w, http.StatusUnauthorized, false, "No active session. Please login!")
			return
		}
		http.Error(w, fmt.Sprintf("Failed to resume workflow: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiWorkflowState(state)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func writeResult(w http.ResponseWriter, status int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.Result{Success: success, Message: message})
}
