package mapping

import (
	"time"

	"github.com/chris/onboarding-funnel/pkg/api"
	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/money"
	"github.com/chris/onboarding-funnel/pkg/workflow"
)

// ToApiResult converts a domain Result to its wire shape.
func ToApiResult(result models.Result) api.Result {
	return api.Result{Success: result.Success, Message: result.Message}
}

// ToDomainAccountDetails converts API account details to the domain model.
func ToDomainAccountDetails(details *api.AccountDetails) *models.AccountDetails {
	if details == nil {
		return nil
	}
	return &models.AccountDetails{
		AccountNumber: details.AccountNumber,
		IfscCode:      details.IfscCode,
		AccountHolder: details.AccountHolder,
		BankName:      details.BankName,
		ContactNumber: details.ContactNumber,
		QRImage:       details.QRImage,
	}
}

// ToApiAccountDetails converts domain account details to the wire shape.
func ToApiAccountDetails(details *models.AccountDetails) *api.AccountDetails {
	if details == nil {
		return nil
	}
	return &api.AccountDetails{
		AccountNumber: details.AccountNumber,
		IfscCode:      details.IfscCode,
		AccountHolder: details.AccountHolder,
		BankName:      details.BankName,
		ContactNumber: details.ContactNumber,
		QRImage:       details.QRImage,
	}
}

// ToDomainAutodebitDetails converts API autodebit details to the domain model.
func ToDomainAutodebitDetails(details *api.AutodebitDetails) *models.AutodebitDetails {
	if details == nil {
		return nil
	}
	return &models.AutodebitDetails{
		CardNumber:    details.CardNumber,
		CardPin:       details.CardPin,
		CardExpiry:    details.CardExpiry,
		CardCvv:       details.CardCvv,
		AccountHolder: details.AccountHolder,
		OTPEnabled:    details.OTPEnabled,
	}
}

// ToApiAutodebitDetails converts domain autodebit details to the wire shape.
func ToApiAutodebitDetails(details *models.AutodebitDetails) *api.AutodebitDetails {
	if details == nil {
		return nil
	}
	return &api.AutodebitDetails{
		CardNumber:    details.CardNumber,
		CardPin:       details.CardPin,
		CardExpiry:    details.CardExpiry,
		CardCvv:       details.CardCvv,
		AccountHolder: details.AccountHolder,
		OTPEnabled:    details.OTPEnabled,
	}
}

// ToDomainWithdrawalDetails converts API withdrawal details to the domain
// model.
func ToDomainWithdrawalDetails(details *api.WithdrawalDetails) *models.WithdrawalDetails {
	if details == nil {
		return nil
	}
	return &models.WithdrawalDetails{
		AccountNumber: details.AccountNumber,
		IfscCode:      details.IfscCode,
		BankName:      details.BankName,
		ContactNumber: details.ContactNumber,
	}
}

// ToDomainPayload converts an advance request body to a workflow payload.
func ToDomainPayload(req *api.AdvanceRequest) workflow.Payload {
	return workflow.Payload{
		AccountDetails:   ToDomainAccountDetails(req.AccountDetails),
		AutodebitDetails: ToDomainAutodebitDetails(req.Autodebit),
		Withdrawal:       ToDomainWithdrawalDetails(req.Withdrawal),
		UTR:              req.UTR,
		Code:             req.Code,
		Cancel:           req.Cancel,
	}
}

// ToApiWorkflowState converts a resumed workflow state to the wire shape,
// attaching display-formatted amounts.
func ToApiWorkflowState(state *workflow.State) *api.WorkflowState {
	return &api.WorkflowState{
		Username:              state.Username,
		Stage:                 string(state.Stage),
		Activated:             state.Activated,
		Balance:               state.Ledger.Balance,
		Commission:            state.Ledger.Commission,
		DisplayBalance:        money.Format(state.Ledger.Balance),
		DisplayCommission:     money.Format(state.Ledger.Commission),
		TimerRemainingSeconds: int64(state.TimerRemaining.Seconds()),
		SimulatorRunning:      state.SimulatorRunning,
	}
}

// ToApiLedgerEntry converts a domain feed entry to the wire shape.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryID:       entry.EntryID,
		Amount:        entry.Amount,
		DisplayAmount: money.Format(entry.Amount),
		Balance:       entry.Balance,
		ReceivedAt:    entry.ReceivedAt.Format(time.RFC3339),
	}
}
