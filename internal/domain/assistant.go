package domain

import "time"

// Intent is the classified purpose of an idle-state utterance.
type Intent string

const (
	IntentSendMoney    Intent = "send_money"
	IntentCheckBalance Intent = "check_balance"
	IntentOpenAccount  Intent = "open_account"
	IntentLoanInfo     Intent = "loan_info"
	IntentUnknown      Intent = "unknown"
)

// CommandResult is the response payload for a processed utterance.
// OTP is only populated while RequiresOTP is true and the server is
// configured to echo the code back (demo mode).
type CommandResult struct {
	Message     string  `json:"message"`
	RequiresOTP bool    `json:"requiresOtp"`
	OTP         *string `json:"otp"`
}

// WelcomeResult carries the localized greeting to be spoken by the client.
type WelcomeResult struct {
	VoiceMessage string `json:"voiceMessage"`
}

// VerifyResult is the response payload of the explicit OTP verification
// endpoint.
type VerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TransferCompleted is published to the message queue whenever a transfer
// dialogue passes OTP verification.
type TransferCompleted struct {
	Reference   string    `json:"reference"`
	UserID      string    `json:"user_id"`
	Recipient   string    `json:"recipient"`
	Amount      string    `json:"amount"`
	CompletedAt time.Time `json:"completed_at"`
}
