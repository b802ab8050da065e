package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sahayata-voice/internal/domain"
	"github.com/seu-repo/sahayata-voice/internal/mocks"
)

func newTestApp(service *mocks.MockAssistantService) *fiber.App {
	app := fiber.New()
	handler := NewAssistantHandler(service, zap.NewNop())
	app.Post("/api/v1/assistant/command", handler.ProcessCommand)
	app.Post("/api/v1/assistant/welcome", handler.Welcome)
	app.Post("/api/v1/assistant/verify-otp", handler.VerifyOTP)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestProcessCommand_ForwardsRequestFields(t *testing.T) {
	// Arrange
	var gotUser, gotLang, gotCommand string
	service := &mocks.MockAssistantService{
		ProcessCommandFunc: func(ctx context.Context, userID, language, command string) (*domain.CommandResult, error) {
			gotUser, gotLang, gotCommand = userID, language, command
			return &domain.CommandResult{Message: "ok"}, nil
		},
	}
	app := newTestApp(service)

	// Act
	resp := postJSON(t, app, "/api/v1/assistant/command", CommandRequest{
		Command:  "send money",
		Language: "te",
		UserID:   "user-1",
	})
	defer resp.Body.Close()

	// Assert
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotUser != "user-1" || gotLang != "te" || gotCommand != "send money" {
		t.Errorf("unexpected forwarded fields: %q %q %q", gotUser, gotLang, gotCommand)
	}

	var result domain.CommandResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Message != "ok" {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestProcessCommand_OTPFieldShape(t *testing.T) {
	// Arrange
	code := "123456"
	service := &mocks.MockAssistantService{
		ProcessCommandFunc: func(ctx context.Context, userID, language, command string) (*domain.CommandResult, error) {
			return &domain.CommandResult{Message: "m", RequiresOTP: true, OTP: &code}, nil
		},
	}
	app := newTestApp(service)

	// Act
	resp := postJSON(t, app, "/api/v1/assistant/command", CommandRequest{Command: "yes"})
	defer resp.Body.Close()

	// Assert: wire field names match the browser client
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["requiresOtp"] != true {
		t.Errorf("expected requiresOtp true, got %v", payload["requiresOtp"])
	}
	if payload["otp"] != "123456" {
		t.Errorf("expected otp echoed, got %v", payload["otp"])
	}
}

func TestProcessCommand_MalformedBody(t *testing.T) {
	// Arrange
	app := newTestApp(&mocks.MockAssistantService{})

	// Act
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/command", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	// Assert
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProcessCommand_ServiceError(t *testing.T) {
	// Arrange
	service := &mocks.MockAssistantService{
		ProcessCommandFunc: func(ctx context.Context, userID, language, command string) (*domain.CommandResult, error) {
			return nil, errors.New("boom")
		},
	}
	app := newTestApp(service)

	// Act
	resp := postJSON(t, app, "/api/v1/assistant/command", CommandRequest{Command: "send money"})
	defer resp.Body.Close()

	// Assert
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestWelcome(t *testing.T) {
	// Arrange
	service := &mocks.MockAssistantService{
		WelcomeFunc: func(ctx context.Context, language string) (*domain.WelcomeResult, error) {
			return &domain.WelcomeResult{VoiceMessage: "hello"}, nil
		},
	}
	app := newTestApp(service)

	// Act
	resp := postJSON(t, app, "/api/v1/assistant/welcome", WelcomeRequest{Language: "en"})
	defer resp.Body.Close()

	// Assert
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["voiceMessage"] != "hello" {
		t.Errorf("expected voiceMessage field, got %v", payload)
	}
}

func TestVerifyOTP(t *testing.T) {
	// Arrange
	service := &mocks.MockAssistantService{
		VerifyOTPFunc: func(ctx context.Context, userID, language, candidate string) (*domain.VerifyResult, error) {
			return &domain.VerifyResult{Success: candidate == "123456", Message: "checked"}, nil
		},
	}
	app := newTestApp(service)

	// Act
	resp := postJSON(t, app, "/api/v1/assistant/verify-otp", VerifyOTPRequest{
		OTP:    "123456",
		UserID: "user-1",
	})
	defer resp.Body.Close()

	// Assert
	var result domain.VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success || result.Message != "checked" {
		t.Errorf("unexpected result: %+v", result)
	}
}
