// Package handlers composes the per-resource handlers into the single
// ServerInterface the router mounts.
package handlers

import (
	"github.com/chris/onboarding-funnel/pkg/anchor"
	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/handlers/accounts"
	"github.com/chris/onboarding-funnel/pkg/handlers/funnel"
	ledgerhandler "github.com/chris/onboarding-funnel/pkg/handlers/ledger"
	"github.com/chris/onboarding-funnel/pkg/handlers/timer"
	"github.com/chris/onboarding-funnel/pkg/ledger"
	"github.com/chris/onboarding-funnel/pkg/registry"
	"github.com/chris/onboarding-funnel/pkg/storage"
	"github.com/chris/onboarding-funnel/pkg/workflow"
)

// ApiHandler implements the api.ServerInterface by embedding the
// per-resource handlers.
type ApiHandler struct {
	*accounts.AccountsHandler
	*funnel.FunnelHandler
	*ledgerhandler.LedgerHandler
	*timer.TimerHandler
}

// NewApiHandler creates an ApiHandler wired over the given components.
func NewApiHandler(store storage.Storage, reg *registry.Registry, machine *workflow.Machine, sim *ledger.Simulator, a *anchor.Anchor) *ApiHandler {
	return &ApiHandler{
		AccountsHandler: accounts.NewAccountsHandler(reg),
		FunnelHandler:   funnel.NewFunnelHandler(machine),
		LedgerHandler:   ledgerhandler.NewLedgerHandler(sim, reg, store, store),
		TimerHandler:    timer.NewTimerHandler(a, store),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
