package mocks

import (
	"context"

	"github.com/seu-repo/sahayata-voice/internal/domain"
)

// MockAssistantService is a mock implementation of AssistantService
type MockAssistantService struct {
	ProcessCommandFunc func(ctx context.Context, userID, language, command string) (*domain.CommandResult, error)
	WelcomeFunc        func(ctx context.Context, language string) (*domain.WelcomeResult, error)
	VerifyOTPFunc      func(ctx context.Context, userID, language, candidate string) (*domain.VerifyResult, error)
}

func (m *MockAssistantService) ProcessCommand(ctx context.Context, userID, language, command string) (*domain.CommandResult, error) {
	if m.ProcessCommandFunc != nil {
		return m.ProcessCommandFunc(ctx, userID, language, command)
	}
	return &domain.CommandResult{}, nil
}

func (m *MockAssistantService) Welcome(ctx context.Context, language string) (*domain.WelcomeResult, error) {
	if m.WelcomeFunc != nil {
		return m.WelcomeFunc(ctx, language)
	}
	return &domain.WelcomeResult{}, nil
}

func (m *MockAssistantService) VerifyOTP(ctx context.Context, userID, language, candidate string) (*domain.VerifyResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, userID, language, candidate)
	}
	return &domain.VerifyResult{}, nil
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	SendSMSFunc func(ctx context.Context, to, message string) error
	Sent        []string
}

func (m *MockNotifier) SendSMS(ctx context.Context, to, message string) error {
	m.Sent = append(m.Sent, message)
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(ctx, to, message)
	}
	return nil
}
