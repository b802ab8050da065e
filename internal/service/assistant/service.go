// Package assistant implements the banking dialogue engine: it
// classifies idle-state utterances into intents, collects the transfer
// slots step by step, and gates the transfer behind an OTP.
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/sahayata-voice/internal/adapter/queue"
	"github.com/seu-repo/sahayata-voice/internal/domain"
	"github.com/seu-repo/sahayata-voice/internal/locale"
	"github.com/seu-repo/sahayata-voice/internal/nlu"
	"github.com/seu-repo/sahayata-voice/internal/observability/telemetry"
	"github.com/seu-repo/sahayata-voice/internal/otp"
	"github.com/seu-repo/sahayata-voice/internal/ports"
)

// SubjectTransferCompleted is the queue subject for transfer audit events.
const SubjectTransferCompleted = "transfers.completed"

// Options carries the dialogue defaults from configuration.
type Options struct {
	DefaultLanguage string
	DefaultUserID   string
	// ExposeOTP echoes generated codes in the response payload. This is
	// the original demo behavior; it defeats the OTP as a secret and
	// exists only so a client without an SMS channel can show the code.
	ExposeOTP bool
	// SMSRecipient is the phone number OTP codes are delivered to when a
	// notifier is configured.
	SMSRecipient string
}

type stepHandler func(ctx context.Context, userID, language, utterance string, session *domain.Session) *domain.CommandResult

// Service drives the per-user dialogue state machine. It is stateless
// between invocations: all conversation state lives in the session
// loaded from the store at the start of each call and written back at
// the end.
type Service struct {
	sessions   ports.SessionStore
	catalog    *locale.Catalog
	classifier *nlu.Classifier
	extractor  *nlu.Extractor
	queue      queue.MessageQueue
	notifier   ports.Notifier
	opts       Options
	generate   func() string
	handlers   map[domain.Step]stepHandler
	log        *zap.Logger
}

func NewService(
	sessions ports.SessionStore,
	catalog *locale.Catalog,
	table *nlu.Table,
	mq queue.MessageQueue,
	notifier ports.Notifier,
	opts Options,
	log *zap.Logger,
) *Service {
	s := &Service{
		sessions:   sessions,
		catalog:    catalog,
		classifier: nlu.NewClassifier(table),
		extractor:  nlu.NewExtractor(table),
		queue:      mq,
		notifier:   notifier,
		opts:       opts,
		generate:   otp.Generate,
		log:        log,
	}

	s.handlers = map[domain.Step]stepHandler{
		domain.StepIdle:                 s.handleIdle,
		domain.StepAwaitingRecipient:    s.handleRecipient,
		domain.StepAwaitingAmount:       s.handleAmount,
		domain.StepAwaitingConfirmation: s.handleConfirmation,
		domain.StepAwaitingOTP:          s.handleOTP,
	}

	return s
}

// ProcessCommand advances the caller's session state machine exactly
// once and returns the localized response. Any panic while handling the
// utterance degrades to the technical_error message without persisting a
// half-mutated session.
func (s *Service) ProcessCommand(ctx context.Context, userID, language, command string) (result *domain.CommandResult, err error) {
	start := time.Now()
	defer func() {
		telemetry.CommandLatency.Observe(time.Since(start).Seconds())
	}()

	if userID == "" {
		userID = s.opts.DefaultUserID
	}
	language = s.language(language)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Recovered from panic in dialogue engine",
				zap.Any("panic", r),
				zap.String("user_id", userID),
			)
			telemetry.CommandsTotal.WithLabelValues("unknown", "panic").Inc()
			result = s.failure(language)
			err = nil
		}
	}()

	session, serr := s.sessions.GetOrCreate(ctx, userID)
	if serr != nil {
		s.log.Error("Failed to load session", zap.String("user_id", userID), zap.Error(serr))
		telemetry.CommandsTotal.WithLabelValues("unknown", "store_error").Inc()
		return s.failure(language), nil
	}

	utterance := nlu.Normalize(command)
	stage := session.Step.String()

	handler, ok := s.handlers[session.Step]
	if !ok {
		session.Reset()
		handler = s.handleIdle
	}
	result = handler(ctx, userID, language, utterance, session)

	if serr := s.sessions.Save(ctx, userID, session); serr != nil {
		s.log.Error("Failed to save session", zap.String("user_id", userID), zap.Error(serr))
	}

	telemetry.CommandsTotal.WithLabelValues(stage, "ok").Inc()
	s.log.Info("Utterance processed",
		zap.String("user_id", userID),
		zap.String("stage", stage),
		zap.String("next_step", session.Step.String()),
	)
	return result, nil
}

// Welcome returns the localized greeting. Pure lookup, no session access.
func (s *Service) Welcome(ctx context.Context, language string) (*domain.WelcomeResult, error) {
	return &domain.WelcomeResult{
		VoiceMessage: s.catalog.Message(s.language(language), "welcome", nil),
	}, nil
}

// VerifyOTP checks candidate against the session's stored code. Unlike
// the spoken path it requires exact equality. Success resets the session
// to idle; failure leaves it untouched, so a second call with a
// just-consumed code fails.
func (s *Service) VerifyOTP(ctx context.Context, userID, language, candidate string) (*domain.VerifyResult, error) {
	language = s.language(language)

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load session", zap.String("user_id", userID), zap.Error(err))
		return &domain.VerifyResult{Message: s.catalog.Message(language, "technical_error", nil)}, nil
	}

	if session == nil || !otp.Matches(session.OTP, candidate) {
		telemetry.OTPVerificationsTotal.WithLabelValues("failure").Inc()
		return &domain.VerifyResult{Message: s.catalog.Message(language, "wrong_otp", nil)}, nil
	}

	telemetry.OTPVerificationsTotal.WithLabelValues("success").Inc()

	// The original demo substitutes fallbacks when slots are missing.
	recipient := session.Recipient
	if recipient == "" {
		recipient = "them"
	}
	amount := session.Amount
	if amount == "" {
		amount = "amount"
	}
	message := s.catalog.Message(language, "success", map[string]string{
		"recipient": recipient,
		"amount":    amount,
	})

	s.completeTransfer(ctx, userID, session)
	if err := s.sessions.Reset(ctx, userID); err != nil {
		s.log.Error("Failed to reset session", zap.String("user_id", userID), zap.Error(err))
	}

	return &domain.VerifyResult{Success: true, Message: message}, nil
}

func (s *Service) handleIdle(ctx context.Context, userID, language, utterance string, session *domain.Session) *domain.CommandResult {
	intent := s.classifier.Classify(utterance)

	switch intent {
	case domain.IntentSendMoney:
		session.Step = domain.StepAwaitingRecipient
		telemetry.ActiveDialogues.Inc()
		return s.reply(language, "ask_recipient", nil)
	case domain.IntentCheckBalance:
		return s.reply(language, "balance", nil)
	case domain.IntentOpenAccount:
		return s.reply(language, "account_info", nil)
	case domain.IntentLoanInfo:
		return s.reply(language, "loan_info", nil)
	default:
		return s.reply(language, "not_understood", nil)
	}
}

func (s *Service) handleRecipient(ctx context.Context, userID, language, utterance string, session *domain.Session) *domain.CommandResult {
	session.Recipient = s.extractor.ExtractRecipient(utterance)
	session.Step = domain.StepAwaitingAmount
	return s.reply(language, "ask_amount", nil)
}

func (s *Service) handleAmount(ctx context.Context, userID, language, utterance string, session *domain.Session) *domain.CommandResult {
	amount, ok := nlu.ExtractAmount(utterance)
	if !ok {
		// No digits spoken: silently re-ask instead of erroring.
		return s.reply(language, "ask_amount", nil)
	}

	session.Amount = amount
	session.Step = domain.StepAwaitingConfirmation
	return s.reply(language, "confirm_transfer", map[string]string{
		"recipient": session.Recipient,
		"amount":    session.Amount,
	})
}

func (s *Service) handleConfirmation(ctx context.Context, userID, language, utterance string, session *domain.Session) *domain.CommandResult {
	if !s.classifier.IsAffirmative(utterance) {
		return s.reply(language, "confirm_transfer", map[string]string{
			"recipient": session.Recipient,
			"amount":    session.Amount,
		})
	}

	code := s.generate()
	session.OTP = code
	session.Step = domain.StepAwaitingOTP
	s.deliverOTP(ctx, language, code)

	message := s.catalog.Message(language, "processing", nil) + " " +
		s.catalog.Message(language, "otp_sent", map[string]string{"otp": code})

	result := &domain.CommandResult{Message: message, RequiresOTP: true}
	s.attachOTP(result, code)
	return result
}

func (s *Service) handleOTP(ctx context.Context, userID, language, utterance string, session *domain.Session) *domain.CommandResult {
	if !otp.MatchesUtterance(session.OTP, utterance) {
		telemetry.OTPVerificationsTotal.WithLabelValues("failure").Inc()
		result := s.reply(language, "otp_sent", map[string]string{"otp": session.OTP})
		result.RequiresOTP = true
		s.attachOTP(result, session.OTP)
		return result
	}

	telemetry.OTPVerificationsTotal.WithLabelValues("success").Inc()
	result := s.reply(language, "success", map[string]string{
		"recipient": session.Recipient,
		"amount":    session.Amount,
	})
	s.completeTransfer(ctx, userID, session)
	return result
}

// completeTransfer publishes the audit event and clears the session's
// dialogue state. The caller persists the cleared session.
func (s *Service) completeTransfer(ctx context.Context, userID string, session *domain.Session) {
	event := domain.TransferCompleted{
		Reference:   uuid.NewString(),
		UserID:      userID,
		Recipient:   session.Recipient,
		Amount:      session.Amount,
		CompletedAt: time.Now().UTC(),
	}

	if data, err := json.Marshal(event); err == nil {
		if err := s.queue.Publish(SubjectTransferCompleted, data); err != nil {
			s.log.Error("Failed to publish transfer event",
				zap.String("reference", event.Reference),
				zap.Error(err),
			)
		}
	}

	telemetry.TransfersCompletedTotal.Inc()
	telemetry.ActiveDialogues.Dec()
	s.log.Info("Transfer completed",
		zap.String("reference", event.Reference),
		zap.String("user_id", userID),
		zap.String("recipient", session.Recipient),
		zap.String("amount", session.Amount),
	)

	session.Reset()
}

// deliverOTP sends the code over SMS when a notifier and recipient are
// configured. Delivery failure never fails the dialogue.
func (s *Service) deliverOTP(ctx context.Context, language, code string) {
	if s.notifier == nil || s.opts.SMSRecipient == "" {
		return
	}
	message := s.catalog.Message(language, "otp_sent", map[string]string{"otp": code})
	if err := s.notifier.SendSMS(ctx, s.opts.SMSRecipient, message); err != nil {
		s.log.Warn("Failed to deliver OTP over SMS", zap.Error(err))
	}
}

func (s *Service) attachOTP(result *domain.CommandResult, code string) {
	if s.opts.ExposeOTP {
		result.OTP = &code
	}
}

func (s *Service) reply(language, key string, subs map[string]string) *domain.CommandResult {
	return &domain.CommandResult{Message: s.catalog.Message(language, key, subs)}
}

func (s *Service) failure(language string) *domain.CommandResult {
	return &domain.CommandResult{Message: s.catalog.Message(language, "technical_error", nil)}
}

func (s *Service) language(language string) string {
	if language == "" {
		return s.opts.DefaultLanguage
	}
	return language
}
