package domain

// Step is the session's position in the transfer dialogue sequence.
type Step int

const (
	StepIdle Step = iota
	StepAwaitingRecipient
	StepAwaitingAmount
	StepAwaitingConfirmation
	StepAwaitingOTP
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepAwaitingRecipient:
		return "awaiting_recipient"
	case StepAwaitingAmount:
		return "awaiting_amount"
	case StepAwaitingConfirmation:
		return "awaiting_confirmation"
	case StepAwaitingOTP:
		return "awaiting_otp"
	default:
		return "unknown"
	}
}

// Session holds the per-user conversation state tracked across requests.
// Recipient, Amount and OTP are only set while the dialogue is at or past
// the step that collects them; Reset clears all of them.
type Session struct {
	Step      Step   `json:"step"`
	Recipient string `json:"recipient,omitempty"`
	Amount    string `json:"amount,omitempty"`
	OTP       string `json:"otp,omitempty"`
}

// NewSession returns a fresh idle session with no collected slots.
func NewSession() *Session {
	return &Session{Step: StepIdle}
}

// Reset returns the session to the idle state and clears all slots.
func (s *Session) Reset() {
	s.Step = StepIdle
	s.Recipient = ""
	s.Amount = ""
	s.OTP = ""
}
