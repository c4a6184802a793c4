// Package api defines the wire types and routes of the HTTP surface the UI
// collaborator drives. Every mutating response is the Result shape; it is the
// only error/success channel exposed upward.
package api

// Result mirrors models.Result on the wire.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterRequest is the body for POST /register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountDetails is the wire shape of a user's bank details. QRImage carries
// the optional uploaded image as base64 bytes.
type AccountDetails struct {
	AccountNumber string `json:"account_number"`
	IfscCode      string `json:"ifsc_code"`
	AccountHolder string `json:"account_holder"`
	BankName      string `json:"bank_name"`
	ContactNumber string `json:"contact_number"`
	QRImage       []byte `json:"qr_image,omitempty"`
}

// AutodebitDetails is the wire shape of the autodebit capture. OTPEnabled is
// informational on reads; writes always store it as true.
type AutodebitDetails struct {
	CardNumber    string `json:"card_number"`
	CardPin       string `json:"card_pin"`
	CardExpiry    string `json:"card_expiry"`
	CardCvv       string `json:"card_cvv"`
	AccountHolder string `json:"account_holder"`
	OTPEnabled    bool   `json:"otp_enabled"`
}

// WithdrawalDetails is the payout capture for a withdraw request.
type WithdrawalDetails struct {
	AccountNumber string `json:"account_number"`
	IfscCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
	ContactNumber string `json:"contact_number"`
}

// AdvanceRequest is the body for POST /workflow/advance. Stage names the
// submitted step; only the payload field that step reads is required.
type AdvanceRequest struct {
	Stage          string             `json:"stage"`
	AccountDetails *AccountDetails    `json:"account_details,omitempty"`
	Autodebit      *AutodebitDetails  `json:"autodebit_details,omitempty"`
	Withdrawal     *WithdrawalDetails `json:"withdrawal,omitempty"`
	UTR            string             `json:"utr,omitempty"`
	Code           string             `json:"code,omitempty"`
	Cancel         bool               `json:"cancel,omitempty"`
}

// WorkflowState is the response for GET /workflow/state.
type WorkflowState struct {
	Username              string  `json:"username"`
	Stage                 string  `json:"stage"`
	Activated             bool    `json:"activated"`
	Balance               float64 `json:"balance"`
	Commission            float64 `json:"commission"`
	DisplayBalance        string  `json:"display_balance"`
	DisplayCommission     string  `json:"display_commission"`
	TimerRemainingSeconds int64   `json:"timer_remaining_seconds"`
	SimulatorRunning      bool    `json:"simulator_running"`
}

// LedgerSnapshot is the response for GET /ledger/snapshot.
type LedgerSnapshot struct {
	Username          string  `json:"username"`
	Balance           float64 `json:"balance"`
	Commission        float64 `json:"commission"`
	DisplayBalance    string  `json:"display_balance"`
	DisplayCommission string  `json:"display_commission"`
	LinkedAccount     string  `json:"linked_account,omitempty"`
	LimitReached      bool    `json:"limit_reached"`
	Running           bool    `json:"running"`
}

// LedgerEntry is one feed item in GET /ledger/entries responses.
type LedgerEntry struct {
	EntryID       string  `json:"entry_id"`
	Amount        float64 `json:"amount"`
	DisplayAmount string  `json:"display_amount"`
	Balance       float64 `json:"balance"`
	ReceivedAt    string  `json:"received_at"`
}

// TimerStatus is the response for GET /timer/remaining.
type TimerStatus struct {
	RemainingSeconds int64 `json:"remaining_seconds"`
	Done             bool  `json:"done"`
}
