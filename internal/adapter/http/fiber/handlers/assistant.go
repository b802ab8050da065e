package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sahayata-voice/internal/ports"
)

type AssistantHandler struct {
	service ports.AssistantService
	log     *zap.Logger
}

func NewAssistantHandler(service ports.AssistantService, log *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		log:     log,
	}
}

type CommandRequest struct {
	Command  string `json:"command"`
	Language string `json:"language"`
	UserID   string `json:"userId"`
}

type WelcomeRequest struct {
	Language string `json:"language"`
}

type VerifyOTPRequest struct {
	OTP      string `json:"otp"`
	UserID   string `json:"userId"`
	Language string `json:"language"`
}

// ProcessCommand feeds one transcribed utterance into the dialogue
// engine. Language and userId are optional; the service applies its
// configured defaults.
func (h *AssistantHandler) ProcessCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	result, err := h.service.ProcessCommand(c.Context(), req.UserID, req.Language, req.Command)
	if err != nil {
		h.log.Error("Failed to process command", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process command"})
	}

	return c.JSON(result)
}

// Welcome returns the greeting for the client to speak on startup.
func (h *AssistantHandler) Welcome(c *fiber.Ctx) error {
	var req WelcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	result, err := h.service.Welcome(c.Context(), req.Language)
	if err != nil {
		h.log.Error("Failed to build welcome message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build welcome message"})
	}

	return c.JSON(result)
}

// VerifyOTP checks a typed code against the caller's session.
func (h *AssistantHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	result, err := h.service.VerifyOTP(c.Context(), req.UserID, req.Language, req.OTP)
	if err != nil {
		h.log.Error("Failed to verify OTP", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify OTP"})
	}

	return c.JSON(result)
}
