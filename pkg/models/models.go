package models

import (
	"time"
)

// WorkflowStage identifies the single section of the funnel a user should be
// shown after any reload. It is persisted per username and is the only source
// of truth for resume behavior.
type WorkflowStage string

const (
	StageSetupProfile         WorkflowStage = "SETUP_PROFILE"
	StageBankDetails          WorkflowStage = "BANK_DETAILS"
	StageAutodebit            WorkflowStage = "AUTODEBIT"
	StageActivationPayment    WorkflowStage = "ACTIVATION_PAYMENT"
	StageActivationCodeIssued WorkflowStage = "ACTIVATION_CODE_ISSUED"
	StageCodeVerification     WorkflowStage = "CODE_VERIFICATION"
	StageTimedWait            WorkflowStage = "TIMED_WAIT"
	StageRunningLedger        WorkflowStage = "RUNNING_LEDGER"
	StageWithdrawRequest      WorkflowStage = "WITHDRAW_REQUEST"
	StageVolumeLimitUpsell    WorkflowStage = "VOLUME_LIMIT_UPSELL"
	StageUpgradePayment       WorkflowStage = "UPGRADE_PAYMENT"
	StageWithdrawalSettled    WorkflowStage = "WITHDRAWAL_SETTLED"
)

// UserRecord represents the internal domain model for a registered user.
// Password is stored opaque; hashing is out of scope for this engine and is
// expected to be layered in by the embedding application.
type UserRecord struct {
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	Password          string             `json:"password"`
	AccountDetails    *AccountDetails    `json:"account_details"`
	AutodebitDetails  *AutodebitDetails  `json:"autodebit_details"`
	WithdrawalDetails *WithdrawalDetails `json:"withdrawal_details"`
	Activated         bool               `json:"activated"`
	CreatedAt         time.Time          `json:"created_at"`
}

// AccountDetails holds a user's bank payout details. A resave replaces the
// whole value.
type AccountDetails struct {
	AccountNumber string `json:"account_number"`
	IfscCode      string `json:"ifsc_code"`
	AccountHolder string `json:"account_holder"`
	BankName      string `json:"bank_name"`
	ContactNumber string `json:"contact_number"`
	QRImage       []byte `json:"qr_image,omitempty"`
}

// LinkedLast4 returns the last four digits of the saved account number,
// zero-padded, for the running-account banner.
func (d *AccountDetails) LinkedLast4() string {
	n := d.AccountNumber
	if len(n) > 4 {
		n = n[len(n)-4:]
	}
	for len(n) < 4 {
		n = "0" + n
	}
	return n
}

// AutodebitDetails holds the card capture used by the code-verification
// activation variant. OTPEnabled is coerced to true on every write; no public
// operation can clear it.
type AutodebitDetails struct {
	CardNumber    string `json:"card_number"`
	CardPin       string `json:"card_pin"`
	CardExpiry    string `json:"card_expiry"`
	CardCvv       string `json:"card_cvv"`
	AccountHolder string `json:"account_holder"`
	OTPEnabled    bool   `json:"otp_enabled"`
}

// LedgerState is the persisted running balance and derived commission for one
// username. Balance only ever decreases through an explicit settlement reset.
type LedgerState struct {
	Username   string  `json:"username"`
	Balance    float64 `json:"balance"`
	Commission float64 `json:"commission"`
}

// LedgerEntry is one simulated incoming transaction, kept as a persisted feed
// so the running-account view can be rebuilt after a reload.
type LedgerEntry struct {
	EntryID    string    `json:"entry_id"`
	Username   string    `json:"username"`
	Amount     float64   `json:"amount"`
	Balance    float64   `json:"balance"`
	ReceivedAt time.Time `json:"received_at"`
}

// TimerAnchorRecord marks the wall-clock start of an active countdown.
// Remaining time is always recomputed from this instant, never persisted as a
// decrementing counter.
type TimerAnchorRecord struct {
	Username         string `json:"username"`
	StartEpochMillis int64  `json:"start_epoch_millis"`
}

// Start returns the anchor instant as a time.Time.
func (r *TimerAnchorRecord) Start() time.Time {
	return time.UnixMilli(r.StartEpochMillis)
}

// ActivationCode is the last issued one-time code for a username. The code is
// not single-use: verification succeeds repeatedly until a new code
// overwrites it.
type ActivationCode struct {
	Username string    `json:"username"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}

// WithdrawalDetails is the payout capture submitted with a withdraw request.
type WithdrawalDetails struct {
	AccountNumber string `json:"account_number"`
	IfscCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
	ContactNumber string `json:"contact_number"`
}

// Result is the {success, message} value every mutating operation returns for
// direct user-facing display. This shape is the only error/success channel
// exposed to the UI collaborator.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Ok builds a successful Result.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail builds a failed Result.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
