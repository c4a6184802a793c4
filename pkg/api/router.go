package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ServerInterface lists every operation the UI collaborator can call.
type ServerInterface interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)

	SaveAccountDetails(w http.ResponseWriter, r *http.Request, username string)
	GetAccountDetails(w http.ResponseWriter, r *http.Request, username string)
	SaveAutodebitDetails(w http.ResponseWriter, r *http.Request, username string)
	GetAutodebitDetails(w http.ResponseWriter, r *http.Request, username string)

	AdvanceWorkflow(w http.ResponseWriter, r *http.Request)
	GetWorkflowState(w http.ResponseWriter, r *http.Request)

	StartLedger(w http.ResponseWriter, r *http.Request)
	StopLedger(w http.ResponseWriter, r *http.Request)
	GetLedgerSnapshot(w http.ResponseWriter, r *http.Request)
	ListLedgerEntries(w http.ResponseWriter, r *http.Request)

	StartTimer(w http.ResponseWriter, r *http.Request)
	GetTimerRemaining(w http.ResponseWriter, r *http.Request)
}

// HandlerFromMux mounts all operations on the given chi router.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	r.Post("/register", si.Register)
	r.Post("/login", si.Login)
	r.Post("/logout", si.Logout)

	r.Route("/users/{username}", func(r chi.Router) {
		r.Put("/account-details", withUsername(si.SaveAccountDetails))
		r.Get("/account-details", withUsername(si.GetAccountDetails))
		r.Put("/autodebit-details", withUsername(si.SaveAutodebitDetails))
		r.Get("/autodebit-details", withUsername(si.GetAutodebitDetails))
	})

	r.Post("/workflow/advance", si.AdvanceWorkflow)
	r.Get("/workflow/state", si.GetWorkflowState)

	r.Post("/ledger/start", si.StartLedger)
	r.Post("/ledger/stop", si.StopLedger)
	r.Get("/ledger/snapshot", si.GetLedgerSnapshot)
	r.Get("/ledger/entries", si.ListLedgerEntries)

	r.Post("/timer/start", si.StartTimer)
	r.Get("/timer/remaining", si.GetTimerRemaining)

	return r
}

// withUsername adapts a username-scoped handler to a chi route.
func withUsername(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, chi.URLParam(r, "username"))
	}
}
