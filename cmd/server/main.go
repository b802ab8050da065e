package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/sahayata-voice/internal/adapter/external/notification"
	"github.com/seu-repo/sahayata-voice/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/sahayata-voice/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/sahayata-voice/internal/adapter/queue"
	"github.com/seu-repo/sahayata-voice/internal/adapter/store"
	"github.com/seu-repo/sahayata-voice/internal/domain"
	"github.com/seu-repo/sahayata-voice/internal/locale"
	"github.com/seu-repo/sahayata-voice/internal/nlu"
	"github.com/seu-repo/sahayata-voice/internal/ports"
	"github.com/seu-repo/sahayata-voice/internal/service/assistant"
	"github.com/seu-repo/sahayata-voice/pkg/config"
)

const (
	serviceName    = "sahayata-voice"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Sahayata voice assistant",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.App.Environment == "development" {
		if devLogger, err := zap.NewDevelopment(); err == nil {
			logger = devLogger
		}
	}

	// 3. Initialize Session Store (Redis when configured, in-memory otherwise)
	var sessions ports.SessionStore
	if cfg.Redis.URL != "" {
		sessions, err = store.NewRedisStore(cfg.Redis.URL, cfg.Session.TTL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	} else {
		sessions = store.NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval, logger)
	}
	defer sessions.Close()

	// 4. Initialize Message Queue (NATS when configured)
	var messageQueue queue.MessageQueue
	if cfg.NATS.URL != "" {
		messageQueue, err = queue.NewNATSQueue(cfg.NATS.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
	} else {
		messageQueue = queue.NewNoopQueue(logger)
	}
	defer messageQueue.Close()

	// 5. Load Localization Catalog and NLU trigger table
	catalog, err := locale.NewCatalog(cfg.Assistant.DefaultLanguage, logger)
	if err != nil {
		logger.Fatal("Failed to load localization catalogs", zap.Error(err))
	}

	table, err := loadTriggerTable(cfg.Assistant.TriggersPath)
	if err != nil {
		logger.Fatal("Failed to load trigger table", zap.Error(err))
	}

	// 6. Initialize OTP delivery channel
	notifier := notification.NewSMSAdapter(
		cfg.Notification.SMS.AccountSID,
		cfg.Notification.SMS.AuthToken,
		cfg.Notification.SMS.From,
		logger,
	)

	// 7. Initialize Dialogue Engine
	assistantService := assistant.NewService(sessions, catalog, table, messageQueue, notifier, assistant.Options{
		DefaultLanguage: cfg.Assistant.DefaultLanguage,
		DefaultUserID:   cfg.Assistant.DefaultUserID,
		ExposeOTP:       cfg.Assistant.ExposeOTP,
		SMSRecipient:    cfg.Notification.SMS.DemoRecipient,
	}, logger)

	// 8. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	if cfg.RateLimiting.Enabled {
		app.Use(middleware.RateLimit(cfg.RateLimiting))
	}
	app.Use(middleware.CircuitBreaker(logger))

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sessions.Ping(); err != nil {
			return c.Status(503).SendString("Session store not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			// Adapt net/http handler to fasthttp for Fiber
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")

	assistantHandler := handlers.NewAssistantHandler(assistantService, logger)
	v1.Post("/assistant/welcome", assistantHandler.Welcome)
	v1.Post("/assistant/command", assistantHandler.ProcessCommand)
	v1.Post("/assistant/verify-otp", assistantHandler.VerifyOTP)

	// 9. Start Background Workers
	go startBackgroundWorkers(messageQueue, logger)

	// 10. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 11. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func loadTriggerTable(path string) (*nlu.Table, error) {
	if path != "" {
		return nlu.LoadTableFromFile(path)
	}
	return nlu.LoadTable()
}

// startBackgroundWorkers consumes the assistant's audit events.
func startBackgroundWorkers(mq queue.MessageQueue, logger *zap.Logger) {
	logger.Info("Starting background workers")

	// Worker: transfer audit trail
	mq.Subscribe(assistant.SubjectTransferCompleted, func(msg []byte) error {
		var event domain.TransferCompleted
		if err := json.Unmarshal(msg, &event); err != nil {
			return fmt.Errorf("failed to decode transfer event: %w", err)
		}
		logger.Info("Transfer audit event",
			zap.String("reference", event.Reference),
			zap.String("user_id", event.UserID),
			zap.String("recipient", event.Recipient),
			zap.String("amount", event.Amount),
		)
		return nil
	})
}
