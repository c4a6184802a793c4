// Package workflow implements the persisted funnel state machine. The stage
// marker in the store is the single source of truth for what a user sees;
// after any restart the machine reconstructs its position from persisted
// state alone.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/onboarding-funnel/pkg/activation"
	"github.com/chris/onboarding-funnel/pkg/anchor"
	"github.com/chris/onboarding-funnel/pkg/ledger"
	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/registry"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// ErrNoSession is returned when a workflow operation runs with no logged-in
// user. Workflow calls must fail closed rather than act on a stale identity.
var ErrNoSession = errors.New("no active session")

// ActivationMode selects which of the two historical activation branches the
// machine runs. It is a construction-time choice, never a per-request one.
type ActivationMode string

const (
	// ModeTimedWait activates on a payment reference alone and gates the
	// ledger behind a 90-minute wall-clock wait.
	ModeTimedWait ActivationMode = "timedWait"

	// ModeCodeVerification requires autodebit capture and a generated code
	// round trip, with no timed wait.
	ModeCodeVerification ActivationMode = "codeVerification"
)

// Config selects the deployment variant.
type Config struct {
	Mode       ActivationMode
	UpgradeFee float64
}

// Payload carries the event data submitted with an Advance call. Only the
// field relevant to the submitted stage is read.
type Payload struct {
	AccountDetails   *models.AccountDetails   `json:"account_details,omitempty"`
	AutodebitDetails *models.AutodebitDetails `json:"autodebit_details,omitempty"`
	Withdrawal       *models.WithdrawalDetails `json:"withdrawal,omitempty"`
	UTR              string                   `json:"utr,omitempty"`
	Code             string                   `json:"code,omitempty"`
	Cancel           bool                     `json:"cancel,omitempty"`
}

// State is the resumable view of one user's funnel position.
type State struct {
	Username         string               `json:"username"`
	Stage            models.WorkflowStage `json:"stage"`
	Activated        bool                 `json:"activated"`
	Ledger           models.LedgerState   `json:"ledger"`
	TimerRemaining   time.Duration        `json:"timer_remaining"`
	SimulatorRunning bool                 `json:"simulator_running"`
}

// Machine sequences the registry, code issuer, timer anchor, and ledger
// simulator for the logged-in user.
type Machine struct {
	Registry  *registry.Registry
	Issuer    *activation.Issuer
	Timer     *anchor.Anchor
	Simulator *ledger.Simulator
	Store     storage.WorkflowStore
	Config    Config
}

// New creates a Machine.
func New(store storage.WorkflowStore, reg *registry.Registry, issuer *activation.Issuer, timer *anchor.Anchor, sim *ledger.Simulator, cfg Config) *Machine {
	if cfg.Mode == "" {
		cfg.Mode = ModeTimedWait
	}
	return &Machine{
		Registry:  reg,
		Issuer:    issuer,
		Timer:     timer,
		Simulator: sim,
		Store:     store,
		Config:    cfg,
	}
}

// sessionUser resolves the logged-in username or fails closed.
func (m *Machine) sessionUser(ctx context.Context) (string, error) {
	username, err := m.Store.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if username == "" {
		return "", ErrNoSession
	}
	return username, nil
}

// Advance applies the discrete event identified by stage for the logged-in
// user. Each successful transition persists the next stage and performs the
// associated domain operation. With no session it returns ErrNoSession.
func (m *Machine) Advance(ctx context.Context, stage models.WorkflowStage, payload Payload) (models.Result, error) {
	username, err := m.sessionUser(ctx)
	if err != nil {
		return models.Result{}, err
	}

	switch stage {
	case models.StageSetupProfile:
		return m.enterFunnel(ctx, username)
	case models.StageBankDetails:
		return m.submitBankDetails(ctx, username, payload)
	case models.StageAutodebit:
		return m.submitAutodebit(ctx, username, payload)
	case models.StageActivationPayment:
		return m.submitActivationPayment(ctx, username, payload)
	case models.StageActivationCodeIssued:
		return m.transition(ctx, username, models.StageCodeVerification, "Enter your activation code.")
	case models.StageCodeVerification:
		return m.verifyCode(ctx, username, payload)
	case models.StageTimedWait:
		return m.checkTimedWait(ctx, username)
	case models.StageRunningLedger:
		return m.resumeRunningLedger(ctx, username)
	case models.StageWithdrawRequest:
		return m.submitWithdrawRequest(ctx, username, payload)
	case models.StageVolumeLimitUpsell:
		return m.resolveUpsell(ctx, username, payload)
	case models.StageUpgradePayment:
		return m.submitUpgradePayment(ctx, username, payload)
	case models.StageWithdrawalSettled:
		return m.acknowledgeSettlement(ctx, username)
	default:
		return models.Fail(fmt.Sprintf("Unknown step: %s", stage)), nil
	}
}

// transition persists the next stage and returns a success result.
func (m *Machine) transition(ctx context.Context, username string, next models.WorkflowStage, message string) (models.Result, error) {
	if err := m.Store.PutStage(ctx, username, next); err != nil {
		return models.Result{}, err
	}
	slog.InfoContext(ctx, "workflow stage advanced", "username", username, "stage", next)
	return models.Ok(message), nil
}

func (m *Machine) enterFunnel(ctx context.Context, username string) (models.Result, error) {
	return m.transition(ctx, username, models.StageBankDetails, "Enter your account details.")
}

func (m *Machine) submitBankDetails(ctx context.Context, username string, payload Payload) (models.Result, error) {
	result, err := m.Registry.SaveAccountDetails(ctx, username, payload.AccountDetails)
	if err != nil || !result.Success {
		return result, err
	}

	next := models.StageActivationPayment
	if m.Config.Mode == ModeCodeVerification {
		next = models.StageAutodebit
	}
	if err := m.Store.PutStage(ctx, username, next); err != nil {
		return models.Result{}, err
	}
	return result, nil
}

func (m *Machine) submitAutodebit(ctx context.Context, username string, payload Payload) (models.Result, error) {
	if m.Config.Mode != ModeCodeVerification {
		return models.Fail("Autodebit is not part of this flow."), nil
	}

	result, err := m.Registry.SaveAutodebitDetails(ctx, username, payload.AutodebitDetails)
	if err != nil || !result.Success {
		return result, err
	}
	if err := m.Store.PutStage(ctx, username, models.StageActivationPayment); err != nil {
		return models.Result{}, err
	}
	return result, nil
}

func (m *Machine) submitActivationPayment(ctx context.Context, username string, payload Payload) (models.Result, error) {
	if payload.UTR == "" {
		return models.Fail("Please enter UTR number!"), nil
	}

	if m.Config.Mode == ModeCodeVerification {
		code, err := m.Issuer.Issue(ctx, username)
		if err != nil {
			return models.Result{}, err
		}
		return m.transition(ctx, username, models.StageActivationCodeIssued,
			fmt.Sprintf("Payment received! Your activation code is %s.", code))
	}

	// Timed-wait variant: activate now, unlock the ledger after the wait.
	if _, err := m.Registry.ActivateAccount(ctx, username); err != nil {
		return models.Result{}, err
	}
	if err := m.Timer.Start(ctx, username); err != nil {
		return models.Result{}, err
	}
	return m.transition(ctx, username, models.StageTimedWait,
		"Payment received! Your account is being activated.")
}

func (m *Machine) verifyCode(ctx context.Context, username string, payload Payload) (models.Result, error) {
	err := m.Issuer.Verify(ctx, username, payload.Code)
	switch {
	case errors.Is(err, activation.ErrNoCodeIssued):
		return models.Fail("No activation code has been issued!"), nil
	case errors.Is(err, activation.ErrCodeMismatch):
		return models.Fail("Invalid activation code!"), nil
	case err != nil:
		return models.Result{}, err
	}

	if _, err := m.Registry.ActivateAccount(ctx, username); err != nil {
		return models.Result{}, err
	}
	if err := m.Store.PutStage(ctx, username, models.StageRunningLedger); err != nil {
		return models.Result{}, err
	}
	if err := m.Simulator.Start(ctx, username); err != nil {
		return models.Result{}, err
	}
	return models.Ok("Account activated! Your account is now live."), nil
}

func (m *Machine) checkTimedWait(ctx context.Context, username string) (models.Result, error) {
	remaining, done, err := m.Timer.Remaining(ctx, username)
	if err != nil {
		return models.Result{}, err
	}
	if !done {
		return models.Fail(fmt.Sprintf("Activation in progress. %s remaining.", remaining.Round(time.Second))), nil
	}

	if err := m.Store.PutStage(ctx, username, models.StageRunningLedger); err != nil {
		return models.Result{}, err
	}
	if err := m.Simulator.Start(ctx, username); err != nil {
		return models.Result{}, err
	}
	return models.Ok("Your account is now live!"), nil
}

func (m *Machine) resumeRunningLedger(ctx context.Context, username string) (models.Result, error) {
	if err := m.Store.PutStage(ctx, username, models.StageRunningLedger); err != nil {
		return models.Result{}, err
	}
	if err := m.Simulator.Start(ctx, username); err != nil {
		return models.Result{}, err
	}
	return models.Ok("Running account resumed."), nil
}

func (m *Machine) submitWithdrawRequest(ctx context.Context, username string, payload Payload) (models.Result, error) {
	w := payload.Withdrawal
	if w == nil || w.AccountNumber == "" || w.IfscCode == "" || w.BankName == "" || w.ContactNumber == "" {
		return models.Fail("Please fill all fields!"), nil
	}

	user, err := m.Store.GetUser(ctx, username)
	if err != nil {
		return models.Result{}, err
	}
	if user == nil {
		return models.Fail("User not found!"), nil
	}
	user.WithdrawalDetails = w
	if err := m.Store.PutUser(ctx, user); err != nil {
		return models.Result{}, err
	}

	// Leaving the running view cancels the pending transaction timer.
	m.Simulator.Stop(username)

	return m.transition(ctx, username, models.StageVolumeLimitUpsell,
		"You have exceeded the account volume. Kindly wait 24 hours or upgrade your plan.")
}

func (m *Machine) resolveUpsell(ctx context.Context, username string, payload Payload) (models.Result, error) {
	if payload.Cancel {
		return m.resumeRunningLedger(ctx, username)
	}
	return m.transition(ctx, username, models.StageUpgradePayment,
		fmt.Sprintf("Upgrade plan payment of %.0f pending.", m.Config.UpgradeFee))
}

func (m *Machine) submitUpgradePayment(ctx context.Context, username string, payload Payload) (models.Result, error) {
	stage, err := m.Store.GetStage(ctx, username)
	if err != nil {
		return models.Result{}, err
	}
	if stage != models.StageUpgradePayment {
		return models.Fail("No upgrade payment is pending."), nil
	}
	if payload.UTR == "" {
		return models.Fail("Please enter UTR number!"), nil
	}

	// Settlement: the one place a balance resets to zero.
	if err := m.Simulator.Reset(ctx, username); err != nil {
		return models.Result{}, err
	}
	return m.transition(ctx, username, models.StageWithdrawalSettled,
		"Your payment is credited in 24 hours.")
}

func (m *Machine) acknowledgeSettlement(ctx context.Context, username string) (models.Result, error) {
	return m.resumeRunningLedger(ctx, username)
}

// Resume reconstructs the current stage for the logged-in user purely from
// persisted state and returns the full resumable view. A TIMED_WAIT whose
// anchor has expired (or vanished) rolls forward to RUNNING_LEDGER, and
// resuming RUNNING_LEDGER under the cap restarts the simulator.
func (m *Machine) Resume(ctx context.Context) (*State, error) {
	username, err := m.sessionUser(ctx)
	if err != nil {
		return nil, err
	}

	stage, err := m.Store.GetStage(ctx, username)
	if err != nil {
		return nil, err
	}
	if stage == "" {
		stage = models.StageSetupProfile
	}

	var remaining time.Duration
	switch stage {
	case models.StageTimedWait:
		var done bool
		remaining, done, err = m.Timer.Remaining(ctx, username)
		if err != nil {
			return nil, err
		}
		if done {
			stage = models.StageRunningLedger
			if err := m.Store.PutStage(ctx, username, stage); err != nil {
				return nil, err
			}
		}

	case models.StageActivationCodeIssued, models.StageCodeVerification:
		// The stage is only meaningful while a code is on record.
		code, err := m.Store.GetActivationCode(ctx, username)
		if err != nil {
			return nil, err
		}
		if code == nil {
			stage = models.StageActivationPayment
			if err := m.Store.PutStage(ctx, username, stage); err != nil {
				return nil, err
			}
		}
	}

	if stage == models.StageRunningLedger {
		if err := m.Simulator.Start(ctx, username); err != nil {
			return nil, err
		}
	}

	user, err := m.Store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	ledgerState, err := m.Store.GetLedgerState(ctx, username)
	if err != nil {
		return nil, err
	}

	state := &State{
		Username:         username,
		Stage:            stage,
		Ledger:           *ledgerState,
		TimerRemaining:   remaining,
		SimulatorRunning: m.Simulator.Running(username),
	}
	if user != nil {
		state.Activated = user.Activated
	}
	return state, nil
}
