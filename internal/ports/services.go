package ports

import (
	"context"

	"github.com/seu-repo/sahayata-voice/internal/domain"
)

// AssistantService drives the banking dialogue. Each ProcessCommand call
// advances the caller's session state machine exactly once.
type AssistantService interface {
	ProcessCommand(ctx context.Context, userID, language, command string) (*domain.CommandResult, error)
	Welcome(ctx context.Context, language string) (*domain.WelcomeResult, error)
	VerifyOTP(ctx context.Context, userID, language, candidate string) (*domain.VerifyResult, error)
}

// Notifier delivers out-of-band messages (OTP codes) to the user.
type Notifier interface {
	SendSMS(ctx context.Context, to, message string) error
}
